package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Repository handles product persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns products ordered by name. Without includeUnapproved only
// approved rows are visible; category narrows the result when provided.
func (r *Repository) List(ctx context.Context, includeUnapproved bool, category string) ([]models.Product, error) {
	query := r.DB(ctx).Order("name asc")
	if !includeUnapproved {
		query = query.Where("status = ?", enums.ModerationStatusApproved)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.DB(ctx).Save(product).Error
}

// DeleteWithPrices removes the product and its price rows in one transaction.
func (r *Repository) DeleteWithPrices(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.PriceRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

// CountByStatus returns the number of products in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.ModerationStatus) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
