package user

import "errors"

var (
	// ErrUserNotFound means the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means email/password authentication failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRole means the supplied role is neither customer nor provider.
	ErrInvalidRole = errors.New("invalid role")
)
