package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
)

// RegisterInput contains input for account registration
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput contains input for authentication
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo is the public view of an account
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// AuthResult is returned on successful registration or login
type AuthResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// ToUserInfo converts a domain user to its public view
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
}
