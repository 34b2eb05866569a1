package prices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/repo"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/pagination"
)

// ComparisonRecord is an observation joined with its store and product
// labels, as loaded for the comparison view.
type ComparisonRecord struct {
	PriceID      uuid.UUID       `gorm:"column:price_id"`
	StoreID      uuid.UUID       `gorm:"column:store_id"`
	StoreName    string          `gorm:"column:store_name"`
	ProductName  string          `gorm:"column:product_name"`
	ProductBrand *string         `gorm:"column:product_brand"`
	Price        decimal.Decimal `gorm:"column:price"`
	DateObserved time.Time       `gorm:"column:date_observed"`
	OnSale       bool            `gorm:"column:on_sale"`
}

// Repository handles price observation persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to price operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListForCompare loads all observations for a product with store and
// product labels, cheapest first.
func (r *Repository) ListForCompare(ctx context.Context, productID uuid.UUID) ([]ComparisonRecord, error) {
	var rows []ComparisonRecord
	err := r.DB(ctx).
		Table("prices").
		Select(`prices.id AS price_id,
			prices.store_id AS store_id,
			stores.name AS store_name,
			products.name AS product_name,
			products.brand AS product_brand,
			prices.price AS price,
			prices.date_observed AS date_observed,
			prices.on_sale AS on_sale`).
		Joins("JOIN stores ON stores.id = prices.store_id").
		Joins("JOIN products ON products.id = prices.product_id").
		Where("prices.product_id = ?", productID).
		Order("prices.price asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns observations newest first, optionally narrowed by product
// and store. The cursor walks (created_at, id) backwards; limit should
// include the next-page detection buffer.
func (r *Repository) List(ctx context.Context, productID, storeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.PriceRecord, error) {
	query := r.DB(ctx).Order("created_at desc, id desc").Limit(limit)
	if productID != uuid.Nil {
		query = query.Where("product_id = ?", productID)
	}
	if storeID != uuid.Nil {
		query = query.Where("store_id = ?", storeID)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var records []models.PriceRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create persists a new observation.
func (r *Repository) Create(ctx context.Context, dto CreatePriceDTO) (*models.PriceRecord, error) {
	record := dto.ToModel()
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads an observation by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PriceRecord, error) {
	var record models.PriceRecord
	if err := r.DB(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a single observation.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.PriceRecord{}, "id = ?", id).Error
}

// Count returns the total number of observations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.PriceRecord{}).Count(&count).Error
	return count, err
}
