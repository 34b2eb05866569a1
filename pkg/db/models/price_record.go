package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRecord is a single observed price for a product at a store.
type PriceRecord struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	StoreID      uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DateObserved time.Time       `gorm:"column:date_observed;type:date;not null"`
	OnSale       bool            `gorm:"column:on_sale;not null;default:false"`
	OwnerID      uuid.UUID       `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PriceRecord) TableName() string {
	return "prices"
}
