package regions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/db"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type regionRepository interface {
	List(ctx context.Context) ([]models.Region, error)
	Create(ctx context.Context, name string) (*models.Region, error)
}

// RegionDTO exposes a reference region in API responses.
type RegionDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Service exposes the region reference list.
type Service interface {
	List(ctx context.Context) ([]RegionDTO, error)
	Create(ctx context.Context, name string) (*RegionDTO, error)
}

type service struct {
	repo regionRepository
}

// NewService builds a region service with the provided repository.
func NewService(repo regionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("region repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]RegionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	result := make([]RegionDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, RegionDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, name string) (*RegionDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	region, err := s.repo.Create(ctx, name)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "region already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create region")
	}
	return &RegionDTO{ID: region.ID, Name: region.Name, CreatedAt: region.CreatedAt}, nil
}
