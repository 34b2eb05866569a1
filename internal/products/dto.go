package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// ProductDTO exposes catalog data in API responses.
type ProductDTO struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Brand       *string                `json:"brand,omitempty"`
	ImageURL    *string                `json:"image_url,omitempty"`
	Status      enums.ModerationStatus `json:"status"`
	OwnerID     uuid.UUID              `json:"owner_id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CreateProductDTO holds creation-time data for a new product.
type CreateProductDTO struct {
	Name        string
	Description *string
	Category    *string
	Brand       *string
	ImageURL    *string
	Status      enums.ModerationStatus
	OwnerID     uuid.UUID
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Brand:       m.Brand,
		ImageURL:    m.ImageURL,
		Status:      m.Status,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateProductDTO) ToModel() *models.Product {
	status := c.Status
	if !status.IsValid() {
		status = enums.ModerationStatusPending
	}
	return &models.Product{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Brand:       c.Brand,
		ImageURL:    c.ImageURL,
		Status:      status,
		OwnerID:     c.OwnerID,
	}
}
