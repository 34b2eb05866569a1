package regions

import (
	"context"

	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
)

// Repository handles region persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to region operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns all regions ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	if err := r.DB(ctx).Order("name asc").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

// Create persists a new region row.
func (r *Repository) Create(ctx context.Context, name string) (*models.Region, error) {
	region := &models.Region{Name: name}
	if err := r.DB(ctx).Create(region).Error; err != nil {
		return nil, err
	}
	return region, nil
}
