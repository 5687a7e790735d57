package auth

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/internal/users"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// LoginRequest represents the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains the payload for creating a customer account.
type RegisterRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Role     enums.UserRole `json:"role,omitempty"`
}

// SessionResponse is returned by login and register.
type SessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      *users.UserDTO `json:"user"`
}
