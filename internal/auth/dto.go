package auth

import (
	"github.com/mstanchev/pricewatch-backend/internal/users"
)

// LoginRequest carries the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=80"`
}

// RefreshRequest carries the rotation payload. The access token may be expired.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes the session tied to the provided access token.
type LogoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshResponse is returned on successful session rotation.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
