package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Store is a physical shop whose prices the community tracks.
type Store struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string                 `gorm:"column:name;not null"`
	Region    string                 `gorm:"column:region;not null"`
	Address   *string                `gorm:"column:address"`
	Zip       *string                `gorm:"column:zip"`
	ImageURL  *string                `gorm:"column:image_url"`
	MapsURL   *string                `gorm:"column:maps_url"`
	Status    enums.ModerationStatus `gorm:"column:status;type:moderation_status;not null;default:'pending'"`
	OwnerID   uuid.UUID              `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
