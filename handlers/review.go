package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huduma/services/review"
	"huduma/services/user"
	"huduma/utils"
)

// ReviewHandler exposes review submission and listing.
type ReviewHandler struct {
	Service review.ReviewService
	Users   user.UserService
	Logger  *zap.Logger
}

func NewReviewHandler(svc review.ReviewService, users user.UserService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Service: svc, Users: users, Logger: logger}
}

type addReviewRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	ProviderID string `json:"provider_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// AddReviewHandler handles POST /api/reviews (customers only).
func (h *ReviewHandler) AddReviewHandler(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	customerID := c.GetString("userID")
	customerName := ""
	if u, err := h.Users.GetUserByID(c.Request.Context(), customerID); err == nil {
		customerName = u.DisplayName
	}

	rev, err := h.Service.AddReview(c.Request.Context(), review.AddReviewRequest{
		CustomerID:   customerID,
		CustomerName: customerName,
		ServiceID:    req.ServiceID,
		ProviderID:   req.ProviderID,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rev)
}

// ListServiceReviewsHandler handles GET /api/services/:id/reviews.
func (h *ReviewHandler) ListServiceReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListByService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
