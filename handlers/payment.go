package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huduma/services/payment"
	"huduma/utils"
)

// PaymentHandler exposes the settlement endpoint.
type PaymentHandler struct {
	Service payment.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

type payOrderRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required"`
}

// PayOrderHandler handles POST /api/orders/:id/pay for the authenticated
// customer.
func (h *PaymentHandler) PayOrderHandler(c *gin.Context) {
	var req payOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	txn, err := h.Service.ProcessPayment(c.Request.Context(), payment.PaymentRequest{
		OrderID: c.Param("id"),
		UserID:  c.GetString("userID"),
		Amount:  req.Amount,
		Method:  req.Method,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}
