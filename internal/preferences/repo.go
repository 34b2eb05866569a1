package preferences

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
)

// Repository handles user preference persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to preference operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByUserID loads the single preference row for a user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.DB(ctx).First(&pref, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert writes the preference row, replacing an existing row for the same
// user in place.
func (r *Repository) Upsert(ctx context.Context, pref *models.UserPreference) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preferred_region", "theme", "updated_at"}),
		}).
		Create(pref).Error
}
