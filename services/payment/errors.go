package payment

import "errors"

var (
	// ErrOrderNotFound means the order being settled does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAmountMismatch means the payment amount does not equal the order's
	// snapshotted total. This points at a client bug or tampering, never at a
	// transient condition.
	ErrAmountMismatch = errors.New("payment amount does not match order total")
	// ErrAlreadyPaid means settlement was attempted on a non-pending order.
	// An idempotent caller may treat it as success.
	ErrAlreadyPaid = errors.New("order already settled")
	// ErrInvalidRequest means the request failed basic validation.
	ErrInvalidRequest = errors.New("invalid payment request")
)
