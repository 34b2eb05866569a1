package stores

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

func setupStoresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	stores := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  region TEXT NOT NULL,
  address TEXT,
  zip TEXT,
  image_url TEXT,
  maps_url TEXT,
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
	require.NoError(t, db.Exec(stores).Error)
	require.NoError(t, db.Exec(prices).Error)
	return db
}

func seedStoreRow(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()

	store := &models.Store{
		ID:      uuid.New(),
		Name:    "Billa",
		Region:  "Тракия",
		Status:  enums.ModerationStatusApproved,
		OwnerID: uuid.New(),
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedStoreObservation(t *testing.T, db *gorm.DB, storeID uuid.UUID) *models.PriceRecord {
	t.Helper()

	record := &models.PriceRecord{
		ID:           uuid.New(),
		ProductID:    uuid.New(),
		StoreID:      storeID,
		Price:        decimal.NewFromFloat(2.19),
		DateObserved: time.Now().UTC(),
		OwnerID:      uuid.New(),
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestDeleteWithPricesRemovesObservations(t *testing.T) {
	db := setupStoresTestDB(t)
	repo := NewRepository(db)

	store := seedStoreRow(t, db)
	seedStoreObservation(t, db, store.ID)
	seedStoreObservation(t, db, store.ID)

	other := seedStoreRow(t, db)
	kept := seedStoreObservation(t, db, other.ID)

	require.NoError(t, repo.DeleteWithPrices(context.Background(), store.ID))

	var orphaned int64
	require.NoError(t, db.Model(&models.PriceRecord{}).Where("store_id = ?", store.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned, "observations must be deleted with their store")

	var remaining int64
	require.NoError(t, db.Model(&models.PriceRecord{}).Where("id = ?", kept.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "other stores' observations must survive")

	err := db.First(&models.Store{}, "id = ?", store.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStoreRoundTripsLocationFields(t *testing.T) {
	db := setupStoresTestDB(t)
	repo := NewRepository(db)

	zip := "4000"
	imageURL := "https://cdn.example.com/billa.jpg"
	mapsURL := "https://maps.example.com/?q=billa"
	store := &models.Store{
		ID:       uuid.New(),
		Name:     "Billa",
		Region:   "Тракия",
		Zip:      &zip,
		ImageURL: &imageURL,
		MapsURL:  &mapsURL,
		Status:   enums.ModerationStatusApproved,
		OwnerID:  uuid.New(),
	}
	require.NoError(t, db.Create(store).Error)

	loaded, err := repo.FindByID(context.Background(), store.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Zip)
	assert.Equal(t, zip, *loaded.Zip)
	require.NotNil(t, loaded.ImageURL)
	assert.Equal(t, imageURL, *loaded.ImageURL)
	require.NotNil(t, loaded.MapsURL)
	assert.Equal(t, mapsURL, *loaded.MapsURL)
}
