package prices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
)

// PriceDTO exposes a single observation in API responses.
type PriceDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	StoreID      uuid.UUID `json:"store_id"`
	Price        string    `json:"price"`
	DateObserved string    `json:"date_observed"`
	OnSale       bool      `json:"on_sale"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ComparisonRow is one store's price in a product comparison, cheapest first.
type ComparisonRow struct {
	PriceID           uuid.UUID `json:"price_id"`
	StoreID           uuid.UUID `json:"store_id"`
	StoreName         string    `json:"store_name"`
	ProductName       string    `json:"product_name"`
	ProductBrand      *string   `json:"product_brand,omitempty"`
	Price             string    `json:"price"`
	DateObserved      string    `json:"date_observed"`
	OnSale            bool      `json:"on_sale"`
	IsLowestPrice     bool      `json:"is_lowest_price"`
	PercentDifference *float64  `json:"percent_difference,omitempty"`
}

// PriceListPage is one page of observations plus the cursor for the next.
type PriceListPage struct {
	Items      []PriceDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// CreatePriceDTO holds creation-time data for a new observation.
type CreatePriceDTO struct {
	ProductID    uuid.UUID
	StoreID      uuid.UUID
	Price        decimal.Decimal
	DateObserved time.Time
	OnSale       bool
	OwnerID      uuid.UUID
}

const dateLayout = "2006-01-02"

// FromModel maps the persisted observation into a DTO.
func FromModel(m *models.PriceRecord) *PriceDTO {
	if m == nil {
		return nil
	}
	return &PriceDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		StoreID:      m.StoreID,
		Price:        m.Price.StringFixed(2),
		DateObserved: m.DateObserved.Format(dateLayout),
		OnSale:       m.OnSale,
		OwnerID:      m.OwnerID,
		CreatedAt:    m.CreatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreatePriceDTO) ToModel() *models.PriceRecord {
	return &models.PriceRecord{
		ProductID:    c.ProductID,
		StoreID:      c.StoreID,
		Price:        c.Price,
		DateObserved: c.DateObserved,
		OnSale:       c.OnSale,
		OwnerID:      c.OwnerID,
	}
}
