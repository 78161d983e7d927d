package models

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// ServiceSnapshot is the slice of a Service copied into an Order at creation.
// It is never re-read from the live listing afterward.
type ServiceSnapshot struct {
	Title        string  `bson:"title" json:"title"`
	Price        float64 `bson:"price" json:"price"`
	Category     string  `bson:"category" json:"category"`
	ThumbnailURL string  `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
}

// CustomerSnapshot is the slice of a customer profile copied into an Order
// at creation.
type CustomerSnapshot struct {
	DisplayName string `bson:"display_name" json:"display_name"`
	PhoneNumber string `bson:"phone_number" json:"phone_number"`
	Address     string `bson:"address" json:"address"`
}

// Order represents a placed booking. After creation only Status and
// PaymentReceived ever change; the snapshots, ids and TotalPrice are frozen.
type Order struct {
	ID              string           `bson:"id" json:"id"`
	CustomerID      string           `bson:"customer_id" json:"customer_id"`
	ProviderID      string           `bson:"provider_id" json:"provider_id"`
	ServiceID       string           `bson:"service_id" json:"service_id"`
	Service         ServiceSnapshot  `bson:"service_snapshot" json:"service_snapshot"`
	Customer        CustomerSnapshot `bson:"customer_snapshot" json:"customer_snapshot"`
	BookingDate     string           `bson:"booking_date" json:"booking_date"` // "YYYY-MM-DD"
	BookingTime     string           `bson:"booking_time" json:"booking_time"` // e.g. "14:30"
	Notes           string           `bson:"notes,omitempty" json:"notes,omitempty"`
	TotalPrice      float64          `bson:"total_price" json:"total_price"`
	Status          OrderStatus      `bson:"status" json:"status"`
	PaymentReceived bool             `bson:"payment_received" json:"payment_received"`
	CreatedAt       time.Time        `bson:"created_at" json:"created_at"`
}

// Terminal reports whether no further transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}
