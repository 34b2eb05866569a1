package models

import (
	"time"

	"github.com/google/uuid"
)

// Region is a reference-list entry used to group stores by neighborhood.
type Region struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
