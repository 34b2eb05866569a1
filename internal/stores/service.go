package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/authz"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type storeRepository interface {
	List(ctx context.Context, includeUnapproved bool, region string) ([]models.Store, error)
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	DeleteWithPrices(ctx context.Context, id uuid.UUID) error
}

// Service exposes store operations.
type Service interface {
	List(ctx context.Context, actor authz.Actor, region string) ([]StoreDTO, error)
	Create(ctx context.Context, actor authz.Actor, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, actor authz.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// CreateStoreInput captures the fields accepted on store submission.
type CreateStoreInput struct {
	Name     string
	Region   string
	Address  *string
	Zip      *string
	ImageURL *string
	MapsURL  *string
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name     *string
	Region   *string
	Address  *string
	Zip      *string
	ImageURL *string
	MapsURL  *string
}

func (s *service) List(ctx context.Context, actor authz.Actor, region string) ([]StoreDTO, error) {
	rows, err := s.repo.List(ctx, actor.IsAdmin, strings.TrimSpace(region))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	result := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	region := strings.TrimSpace(input.Region)
	if region == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "region is required")
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{
		Name:     name,
		Region:   region,
		Address:  input.Address,
		Zip:      input.Zip,
		ImageURL: input.ImageURL,
		MapsURL:  input.MapsURL,
		Status:   authz.InitialStatus(actor.IsAdmin),
		OwnerID:  actor.UserID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if !authz.CanEdit(store.OwnerID, actor.UserID, actor.IsAdmin) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the record owner")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.Region != nil {
		if strings.TrimSpace(*input.Region) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "region cannot be empty")
		}
		store.Region = strings.TrimSpace(*input.Region)
	}
	if input.Address != nil {
		store.Address = cloneStringPtr(input.Address)
	}
	if input.Zip != nil {
		store.Zip = cloneStringPtr(input.Zip)
	}
	if input.ImageURL != nil {
		store.ImageURL = cloneStringPtr(input.ImageURL)
	}
	if input.MapsURL != nil {
		store.MapsURL = cloneStringPtr(input.MapsURL)
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error {
	if !authz.CanDelete(actor.IsAdmin) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin required")
	}

	if _, err := s.repo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if err := s.repo.DeleteWithPrices(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
