package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference holds the single per-user settings row, upserted on user_id.
type UserPreference struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	PreferredRegion string    `gorm:"column:preferred_region;not null"`
	Theme           string    `gorm:"column:theme;not null;default:'system'"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
