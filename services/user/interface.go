package user

import (
	"context"

	"huduma/models"
)

// RegisterRequest carries the inputs for creating an account.
type RegisterRequest struct {
	DisplayName string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
	Role        models.Role
}

// UserService manages accounts, it is also the identity-lookup collaborator
// the order pipeline snapshots customer profiles from.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}
