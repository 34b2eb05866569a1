package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Repository handles store persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns stores ordered by name. Without includeUnapproved only
// approved rows are visible; region narrows the result when provided.
func (r *Repository) List(ctx context.Context, includeUnapproved bool, region string) ([]models.Store, error) {
	query := r.DB(ctx).Order("name asc")
	if !includeUnapproved {
		query = query.Where("status = ?", enums.ModerationStatusApproved)
	}
	if region != "" {
		query = query.Where("region = ?", region)
	}
	var stores []models.Store
	if err := query.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	if err := r.DB(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.DB(ctx).Save(store).Error
}

// DeleteWithPrices removes the store and its price rows in one transaction.
func (r *Repository) DeleteWithPrices(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&models.PriceRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Store{}, "id = ?", id).Error
	})
}

// CountByStatus returns the number of stores in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.ModerationStatus) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Store{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
