package order

import (
	"context"

	"huduma/models"
)

// CreateOrderRequest carries the inputs for placing a booking.
type CreateOrderRequest struct {
	CustomerID  string
	ServiceID   string
	ProviderID  string
	BookingDate string // "YYYY-MM-DD"
	BookingTime string // e.g. "14:30"
	Notes       string
}

// Actor identifies who is requesting a status transition.
type Actor struct {
	UserID string
	Role   models.Role
}

// ReminderScheduler schedules a booking reminder for a freshly placed order.
// Scheduling failures are logged, never surfaced to the booking flow.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, o *models.Order) error
}

// OrderService owns the order lifecycle: creation with immutable snapshots,
// reads, and role-gated status transitions.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, role models.Role, statuses []models.OrderStatus) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, target models.OrderStatus, actor Actor) (*models.Order, error)
}
