package orderRepo

import (
	"context"

	"huduma/models"
)

// OrderRepository defines data access for orders and their settlement records.
//
// UpdateStatus and SettlePayment are the only mutation paths; both are
// conditional on the order's current status so that concurrent writers
// serialize per order. Implementations return repository.ErrNotFound when the
// order does not exist and repository.ErrConflict when the status guard fails.
type OrderRepository interface {
	// Create inserts a new order record.
	Create(ctx context.Context, order *models.Order) error
	// GetByID retrieves an order by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser retrieves the orders a user is party to, newest first.
	// For customers it matches customer_id, for providers provider_id.
	// An empty statuses slice means no status filtering.
	ListByUser(ctx context.Context, userID string, role models.Role, statuses []models.OrderStatus) ([]models.Order, error)
	// UpdateStatus moves an order from one status to another, guarded on the
	// current status. No other order field is touched.
	UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus) error
	// SettlePayment atomically flips a pending order to confirmed, marks the
	// payment flag and records the transaction, as one unit.
	SettlePayment(ctx context.Context, orderID string, txn *models.Transaction) error
	// ListTransactions returns the settlement records for an order.
	ListTransactions(ctx context.Context, orderID string) ([]models.Transaction, error)
}
