package prices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/authz"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
	"github.com/mstanchev/pricewatch-backend/pkg/pagination"
)

type priceRepository interface {
	ListForCompare(ctx context.Context, productID uuid.UUID) ([]ComparisonRecord, error)
	List(ctx context.Context, productID, storeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.PriceRecord, error)
	Create(ctx context.Context, dto CreatePriceDTO) (*models.PriceRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PriceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes price observation operations.
type Service interface {
	Compare(ctx context.Context, productID uuid.UUID) ([]ComparisonRow, error)
	List(ctx context.Context, productID, storeID uuid.UUID, params pagination.Params) (*PriceListPage, error)
	Create(ctx context.Context, actor authz.Actor, input CreatePriceInput) (*PriceDTO, error)
	Delete(ctx context.Context, actor authz.Actor, priceID uuid.UUID) error
}

type service struct {
	repo priceRepository
}

// NewService builds a price service with the provided repository.
func NewService(repo priceRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("price repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePriceInput captures the fields accepted on observation submission.
type CreatePriceInput struct {
	ProductID    uuid.UUID
	StoreID      uuid.UUID
	Price        decimal.Decimal
	DateObserved time.Time
	OnSale       bool
}

var oneHundred = decimal.NewFromInt(100)

// Compare loads all observations for the product sorted cheapest first.
// The first row carries is_lowest_price; every other row carries its
// percent difference from the cheapest, rounded to one decimal.
func (s *service) Compare(ctx context.Context, productID uuid.UUID) ([]ComparisonRow, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	records, err := s.repo.ListForCompare(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price comparison")
	}
	if len(records) == 0 {
		return []ComparisonRow{}, nil
	}

	lowest := records[0].Price
	rows := make([]ComparisonRow, 0, len(records))
	for i, record := range records {
		row := ComparisonRow{
			PriceID:      record.PriceID,
			StoreID:      record.StoreID,
			StoreName:    record.StoreName,
			ProductName:  record.ProductName,
			ProductBrand: record.ProductBrand,
			Price:        record.Price.StringFixed(2),
			DateObserved: record.DateObserved.Format(dateLayout),
			OnSale:       record.OnSale,
		}
		if i == 0 {
			row.IsLowestPrice = true
		} else {
			row.PercentDifference = percentAbove(lowest, record.Price)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *service) List(ctx context.Context, productID, storeID uuid.UUID, params pagination.Params) (*PriceListPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	records, err := s.repo.List(ctx, productID, storeID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prices")
	}

	page := &PriceListPage{Items: make([]PriceDTO, 0, len(records))}
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for i := range records {
		page.Items = append(page.Items, *FromModel(&records[i]))
	}
	return page, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, input CreatePriceInput) (*PriceDTO, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store_id is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	observed := input.DateObserved
	if observed.IsZero() {
		observed = time.Now().UTC()
	}

	record, err := s.repo.Create(ctx, CreatePriceDTO{
		ProductID:    input.ProductID,
		StoreID:      input.StoreID,
		Price:        input.Price,
		DateObserved: observed,
		OnSale:       input.OnSale,
		OwnerID:      actor.UserID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price")
	}
	return FromModel(record), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, priceID uuid.UUID) error {
	if !authz.CanDelete(actor.IsAdmin) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin required")
	}

	if _, err := s.repo.FindByID(ctx, priceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "price not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price")
	}

	if err := s.repo.Delete(ctx, priceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price")
	}
	return nil
}

// percentAbove computes how far price sits above the cheapest observation,
// as a percentage rounded to one decimal. A zero lowest price yields nil
// rather than a division by zero.
func percentAbove(lowest, price decimal.Decimal) *float64 {
	if lowest.IsZero() {
		return nil
	}
	delta, _ := price.Sub(lowest).Div(lowest).Mul(oneHundred).Round(1).Float64()
	return &delta
}
