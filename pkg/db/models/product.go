package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Product is a catalog item that price observations attach to.
type Product struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                 `gorm:"column:name;not null"`
	Description *string                `gorm:"column:description"`
	Category    *string                `gorm:"column:category"`
	Brand       *string                `gorm:"column:brand"`
	ImageURL    *string                `gorm:"column:image_url"`
	Status      enums.ModerationStatus `gorm:"column:status;type:moderation_status;not null;default:'pending'"`
	OwnerID     uuid.UUID              `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
