package models

import "time"

// Role identifies which side of the marketplace an account belongs to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// User represents a platform account, customer or provider.
type User struct {
	ID           string    `bson:"id" json:"id"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	Address      string    `bson:"address" json:"address"`
	Role         Role      `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
