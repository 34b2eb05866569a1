package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  brand TEXT,
  image_url TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  owner_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	prices := `
CREATE TABLE IF NOT EXISTS prices (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  price NUMERIC NOT NULL,
  date_observed DATE NOT NULL,
  on_sale INTEGER NOT NULL DEFAULT 0,
  owner_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(prices).Error)
	return db
}

func seedProductRow(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:      uuid.New(),
		Name:    "Прясно мляко 3.6%",
		Status:  enums.ModerationStatusApproved,
		OwnerID: uuid.New(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedObservation(t *testing.T, db *gorm.DB, productID uuid.UUID) *models.PriceRecord {
	t.Helper()

	record := &models.PriceRecord{
		ID:           uuid.New(),
		ProductID:    productID,
		StoreID:      uuid.New(),
		Price:        decimal.NewFromFloat(3.49),
		DateObserved: time.Now().UTC(),
		OwnerID:      uuid.New(),
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestDeleteWithPricesRemovesObservations(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	product := seedProductRow(t, db)
	seedObservation(t, db, product.ID)
	seedObservation(t, db, product.ID)

	other := seedProductRow(t, db)
	kept := seedObservation(t, db, other.ID)

	require.NoError(t, repo.DeleteWithPrices(context.Background(), product.ID))

	var orphaned int64
	require.NoError(t, db.Model(&models.PriceRecord{}).Where("product_id = ?", product.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned, "observations must be deleted with their product")

	var remaining int64
	require.NoError(t, db.Model(&models.PriceRecord{}).Where("id = ?", kept.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "other products' observations must survive")

	err := db.First(&models.Product{}, "id = ?", product.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
