package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"huduma/database/repository"
	userRepo "huduma/database/repository/user"
	"huduma/models"
	"huduma/utils"
)

// tokenTTL is the lifetime of issued auth tokens.
const tokenTTL = 24 * time.Hour

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates an account with a bcrypt-hashed password and returns the
// account together with a signed auth token.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	if req.Role != models.RoleCustomer && req.Role != models.RoleProvider {
		return nil, "", ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         req.Role,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// Authenticate verifies email/password and returns a fresh auth token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// GetUserByID retrieves an account by id.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return u, nil
}

// UpdateFCMToken stores the device push token for an account.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	u.FCMToken = token
	if err := s.Repo.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
