package models

import "time"

// TransactionSuccess is the only transaction status the settlement path
// records today; failed attempts never persist a record.
const TransactionSuccess = "success"

// Transaction is the immutable settlement record written alongside the
// order's pending -> confirmed transition. Exactly one exists per paid order.
type Transaction struct {
	ID        string    `bson:"id" json:"id"`
	OrderID   string    `bson:"order_id" json:"order_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Method    string    `bson:"method" json:"method"` // payment channel, e.g. "GoPay", "cash"
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
