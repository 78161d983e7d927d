package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"huduma/database/repository"
	orderRepo "huduma/database/repository/order"
	"huduma/models"
	"huduma/services/notification"
)

// PaymentRequest carries the inputs for settling an order.
type PaymentRequest struct {
	OrderID string
	UserID  string
	Amount  float64
	Method  string // payment channel, e.g. "GoPay", "M-Pesa", "cash"
}

// PaymentService settles pending orders.
type PaymentService interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*models.Transaction, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Orders   orderRepo.OrderRepository
	Notifier notification.NotificationService // optional
	Logger   *zap.Logger
}

// ProcessPayment settles a pending order: the status transition, the payment
// flag and the transaction record land as one atomic unit or not at all. Of
// two concurrent settlements for the same order at most one commits; the
// loser surfaces ErrAlreadyPaid. The customer notification is dispatched
// after commit, best effort, and never fails the payment.
func (s *DefaultPaymentService) ProcessPayment(ctx context.Context, req PaymentRequest) (*models.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	o, err := s.Orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if o.Status != models.OrderPending {
		return nil, ErrAlreadyPaid
	}
	if req.Amount != o.TotalPrice {
		return nil, ErrAmountMismatch
	}

	txn := &models.Transaction{
		ID:        uuid.New().String(),
		OrderID:   o.ID,
		UserID:    req.UserID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    models.TransactionSuccess,
		CreatedAt: time.Now(),
	}

	if err := s.Orders.SettlePayment(ctx, o.ID, txn); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, repository.ErrConflict):
			// Lost the race against a concurrent settlement.
			return nil, ErrAlreadyPaid
		default:
			return nil, fmt.Errorf("settle payment: %w", err)
		}
	}

	s.notifyCustomer(o, txn)

	return txn, nil
}

// notifyCustomer fires the post-commit confirmation push. Dispatch failures
// are logged and discarded.
func (s *DefaultPaymentService) notifyCustomer(o *models.Order, txn *models.Transaction) {
	if s.Notifier == nil {
		return
	}

	title := "Payment received"
	body := fmt.Sprintf("Your payment of %.2f via %s for %q is confirmed.", txn.Amount, txn.Method, o.Service.Title)
	data := map[string]string{
		"type":          "payment_confirmation",
		"orderId":       o.ID,
		"transactionId": txn.ID,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.SendUserPush(ctx, o.CustomerID, title, body, data); err != nil {
			s.logger().Warn("payment notification dispatch failed",
				zap.String("orderId", o.ID), zap.Error(err))
		}
	}()
}

func validateRequest(req PaymentRequest) error {
	if req.OrderID == "" || req.UserID == "" {
		return ErrInvalidRequest
	}
	if req.Amount <= 0 {
		return ErrInvalidRequest
	}
	if req.Method == "" {
		return ErrInvalidRequest
	}
	return nil
}

func (s *DefaultPaymentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
