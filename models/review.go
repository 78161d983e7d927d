package models

import "time"

// Review is a customer rating for a completed booking. Created once,
// never edited; its rating is folded into the service aggregate exactly once.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	OrderID      string    `bson:"order_id" json:"order_id"`
	ServiceID    string    `bson:"service_id" json:"service_id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	CustomerID   string    `bson:"customer_id" json:"customer_id"`
	CustomerName string    `bson:"customer_name" json:"customer_name"`
	Rating       int       `bson:"rating" json:"rating"` // 1..5
	Comment      string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
