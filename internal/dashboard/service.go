package dashboard

import (
	"context"
	"fmt"

	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type storeCounter interface {
	CountByStatus(ctx context.Context, status enums.ModerationStatus) (int64, error)
}

type productCounter interface {
	CountByStatus(ctx context.Context, status enums.ModerationStatus) (int64, error)
}

type priceCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats carries the landing page counters.
type Stats struct {
	Stores   int64 `json:"stores"`
	Products int64 `json:"products"`
	Prices   int64 `json:"prices"`
}

// Service exposes the public landing stats.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	stores   storeCounter
	products productCounter
	prices   priceCounter
}

// NewService builds a dashboard service over the three counting repos.
func NewService(stores storeCounter, products productCounter, prices priceCounter) (Service, error) {
	if stores == nil || products == nil || prices == nil {
		return nil, fmt.Errorf("store, product and price repositories required")
	}
	return &service{stores: stores, products: products, prices: prices}, nil
}

// Stats counts approved stores, approved products and all observations.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	storeCount, err := s.stores.CountByStatus(ctx, enums.ModerationStatusApproved)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	productCount, err := s.products.CountByStatus(ctx, enums.ModerationStatusApproved)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	priceCount, err := s.prices.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count prices")
	}
	return &Stats{Stores: storeCount, Products: productCount, Prices: priceCount}, nil
}
