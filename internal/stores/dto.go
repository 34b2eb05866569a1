package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Region    string                 `json:"region"`
	Address   *string                `json:"address,omitempty"`
	Zip       *string                `json:"zip,omitempty"`
	ImageURL  *string                `json:"image_url,omitempty"`
	MapsURL   *string                `json:"maps_url,omitempty"`
	Status    enums.ModerationStatus `json:"status"`
	OwnerID   uuid.UUID              `json:"owner_id"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Name     string
	Region   string
	Address  *string
	Zip      *string
	ImageURL *string
	MapsURL  *string
	Status   enums.ModerationStatus
	OwnerID  uuid.UUID
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:        m.ID,
		Name:      m.Name,
		Region:    m.Region,
		Address:   m.Address,
		Zip:       m.Zip,
		ImageURL:  m.ImageURL,
		MapsURL:   m.MapsURL,
		Status:    m.Status,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateStoreDTO) ToModel() *models.Store {
	status := c.Status
	if !status.IsValid() {
		status = enums.ModerationStatusPending
	}
	return &models.Store{
		Name:     c.Name,
		Region:   c.Region,
		Address:  c.Address,
		Zip:      c.Zip,
		ImageURL: c.ImageURL,
		MapsURL:  c.MapsURL,
		Status:   status,
		OwnerID:  c.OwnerID,
	}
}
