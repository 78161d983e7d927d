package catalog

import "errors"

var (
	// ErrServiceNotFound means the listing does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrForbidden means the actor does not own the listing.
	ErrForbidden = errors.New("not the owner of this service")
)
