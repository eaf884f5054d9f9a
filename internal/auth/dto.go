package auth

import (
	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// RegisterRequest is the self-service signup payload. Admin accounts are
// seeded from config, never registered through this endpoint.
type RegisterRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	FullName    string         `json:"full_name" validate:"required,min=2"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	Role        enums.UserRole `json:"role" validate:"required"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
