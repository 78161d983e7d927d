package order

import (
	"errors"
	"fmt"

	"huduma/models"
)

var (
	// ErrOrderNotFound means the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrServiceNotFound means the referenced service listing does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrCustomerNotFound means the referenced customer profile does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrForbidden means the actor's role or identity does not permit the
	// requested transition.
	ErrForbidden = errors.New("actor not permitted for this transition")
	// ErrProviderMismatch means the supplied provider id does not own the
	// referenced service.
	ErrProviderMismatch = errors.New("provider does not own this service")
)

// InvalidTransitionError reports a status change not on the transition table.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}
