package products

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
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

type productRepository interface {
	List(ctx context.Context, includeUnapproved bool, category string) ([]models.Product, error)
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	DeleteWithPrices(ctx context.Context, id uuid.UUID) error
}

type imageResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}

// Service exposes product operations.
type Service interface {
	List(ctx context.Context, actor authz.Actor, category string) ([]ProductDTO, error)
	Create(ctx context.Context, actor authz.Actor, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, actor authz.Actor, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, actor authz.Actor, productID uuid.UUID) error
}

type service struct {
	repo     productRepository
	resolver imageResolver
	logg     *logger.Logger
}

// ServiceParams holds product service dependencies. Resolver is optional;
// without one submitted image URLs are stored as-is.
type ServiceParams struct {
	Repo     productRepository
	Resolver imageResolver
	Logger   *logger.Logger
}

// NewService builds a product service from its dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		repo:     params.Repo,
		resolver: params.Resolver,
		logg:     params.Logger,
	}, nil
}

// CreateProductInput captures the fields accepted on product submission.
type CreateProductInput struct {
	Name        string
	Description *string
	Category    *string
	Brand       *string
	ImageURL    *string
}

// UpdateProductInput captures the allowed product fields for mutation.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Brand       *string
	ImageURL    *string
}

func (s *service) List(ctx context.Context, actor authz.Actor, category string) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, actor.IsAdmin, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	result := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	product, err := s.repo.Create(ctx, CreateProductDTO{
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		Brand:       input.Brand,
		ImageURL:    s.resolveImageURL(ctx, input.ImageURL),
		Status:      authz.InitialStatus(actor.IsAdmin),
		OwnerID:     actor.UserID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if !authz.CanEdit(product.OwnerID, actor.UserID, actor.IsAdmin) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the record owner")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = cloneStringPtr(input.Description)
	}
	if input.Category != nil {
		product.Category = cloneStringPtr(input.Category)
	}
	if input.Brand != nil {
		product.Brand = cloneStringPtr(input.Brand)
	}
	if input.ImageURL != nil {
		product.ImageURL = s.resolveImageURL(ctx, input.ImageURL)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, productID uuid.UUID) error {
	if !authz.CanDelete(actor.IsAdmin) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin required")
	}

	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.repo.DeleteWithPrices(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// resolveImageURL runs a submitted URL through the resolver. Resolution
// failures fall back to the submitted value; product creation never blocks
// on a slow or broken image host.
func (s *service) resolveImageURL(ctx context.Context, submitted *string) *string {
	if submitted == nil || s.resolver == nil {
		return cloneStringPtr(submitted)
	}
	raw := strings.TrimSpace(*submitted)
	if raw == "" {
		return nil
	}
	resolved, err := s.resolver.Resolve(ctx, raw)
	if err != nil || resolved == "" {
		if err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "image_url", raw), "image resolution failed, keeping submitted url")
		}
		return &raw
	}
	return &resolved
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
