package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huduma/models"
	"huduma/services/order"
	"huduma/utils"
)

// OrderHandler exposes the order lifecycle endpoints.
type OrderHandler struct {
	Service order.OrderService
	Logger  *zap.Logger
}

func NewOrderHandler(svc order.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{Service: svc, Logger: logger}
}

type createOrderRequest struct {
	ServiceID   string `json:"service_id" binding:"required"`
	ProviderID  string `json:"provider_id"`
	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateOrderHandler handles POST /api/orders (customers only). The customer
// id is taken from the authenticated account, never from the body.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	o, err := h.Service.CreateOrder(c.Request.Context(), order.CreateOrderRequest{
		CustomerID:  c.GetString("userID"),
		ServiceID:   req.ServiceID,
		ProviderID:  req.ProviderID,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Notes:       req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// GetOrderHandler handles GET /api/orders/:id. Only the parties to the order
// may read it.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	o, err := h.Service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	userID := c.GetString("userID")
	if o.CustomerID != userID && o.ProviderID != userID {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a party to this order")
		return
	}

	c.JSON(http.StatusOK, o)
}

// ListOrdersHandler handles GET /api/orders?status=pending,confirmed for the
// authenticated account, in its own role.
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	var statuses []models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.OrderStatus(strings.TrimSpace(s)))
		}
	}

	orders, err := h.Service.ListOrders(
		c.Request.Context(),
		c.GetString("userID"),
		models.Role(c.GetString("role")),
		statuses,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatusHandler handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateOrderStatusHandler(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	o, err := h.Service.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("id"),
		models.OrderStatus(req.Status),
		order.Actor{
			UserID: c.GetString("userID"),
			Role:   models.Role(c.GetString("role")),
		},
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}
