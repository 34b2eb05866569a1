package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// UserDTO exposes safe identity data in API responses.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds creation-time data for a new user.
type CreateUserDTO struct {
	Email        string
	DisplayName  *string
	PasswordHash string
	SystemRole   enums.SystemRole
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		IsAdmin:     m.IsAdmin(),
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateUserDTO) ToModel() *models.User {
	role := c.SystemRole
	if !role.IsValid() {
		role = enums.SystemRoleUser
	}
	return &models.User{
		Email:        c.Email,
		DisplayName:  c.DisplayName,
		PasswordHash: c.PasswordHash,
		SystemRole:   role,
		IsActive:     true,
	}
}
