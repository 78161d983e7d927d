package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huduma/services/catalog"
	"huduma/utils"
)

// CatalogHandler exposes service listing endpoints.
type CatalogHandler struct {
	Service catalog.CatalogService
	Logger  *zap.Logger
}

func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Service: svc, Logger: logger}
}

type serviceRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category" binding:"required"`
	ThumbnailURL string  `json:"thumbnail_url"`
}

// CreateServiceHandler handles POST /api/services (providers only).
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	svc, err := h.Service.CreateService(c.Request.Context(), catalog.CreateServiceRequest{
		ProviderID:   c.GetString("userID"),
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// GetServiceHandler handles GET /api/services/:id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateServiceHandler handles PATCH /api/services/:id (owning provider only).
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	svc, err := h.Service.UpdateService(c.Request.Context(), c.GetString("userID"), catalog.UpdateServiceRequest{
		ServiceID:    c.Param("id"),
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// ListProviderServicesHandler handles GET /api/providers/:id/services.
func (h *CatalogHandler) ListProviderServicesHandler(c *gin.Context) {
	services, err := h.Service.ListByProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
