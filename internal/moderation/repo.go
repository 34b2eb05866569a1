package moderation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Repository loads and transitions moderated records across both kinds.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to moderation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListPendingStores returns pending stores oldest first.
func (r *Repository) ListPendingStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.DB(ctx).
		Where("status = ?", enums.ModerationStatusPending).
		Order("created_at asc").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// ListPendingProducts returns pending products oldest first.
func (r *Repository) ListPendingProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Where("status = ?", enums.ModerationStatusPending).
		Order("created_at asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindStatus loads the current status of the record identified by kind+id.
func (r *Repository) FindStatus(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID) (enums.ModerationStatus, error) {
	var status enums.ModerationStatus
	query := r.DB(ctx)
	switch kind {
	case enums.ModeratedKindStore:
		query = query.Model(&models.Store{})
	default:
		query = query.Model(&models.Product{})
	}
	err := query.Select("status").Where("id = ?", id).First(&status).Error
	if err != nil {
		return "", err
	}
	return status, nil
}

// UpdateStatus writes the new status for the record identified by kind+id.
func (r *Repository) UpdateStatus(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID, status enums.ModerationStatus) error {
	query := r.DB(ctx)
	switch kind {
	case enums.ModeratedKindStore:
		query = query.Model(&models.Store{})
	default:
		query = query.Model(&models.Product{})
	}
	return query.Where("id = ?", id).Update("status", status).Error
}
