package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type preferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error)
	Upsert(ctx context.Context, pref *models.UserPreference) error
}

// Service exposes per-user settings.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*PreferencesDTO, error)
	Put(ctx context.Context, userID uuid.UUID, input PutPreferencesInput) (*PreferencesDTO, error)
}

type service struct {
	repo preferenceRepository
	cfg  config.PreferencesConfig
}

// NewService builds a preference service from its dependencies.
func NewService(repo preferenceRepository, cfg config.PreferencesConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("preference repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

// PutPreferencesInput captures the writable preference fields.
type PutPreferencesInput struct {
	PreferredRegion string
	Theme           string
}

// Get returns the user's saved preferences, or the defaults when nothing
// has been saved yet.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*PreferencesDTO, error) {
	pref, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &PreferencesDTO{
				PreferredRegion: s.cfg.DefaultRegion,
				Theme:           enums.ThemeSystem,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preferences")
	}
	return FromModel(pref), nil
}

// Put upserts the user's single preference row. Unknown theme values fold
// back to the system default rather than failing the save.
func (s *service) Put(ctx context.Context, userID uuid.UUID, input PutPreferencesInput) (*PreferencesDTO, error) {
	region := strings.TrimSpace(input.PreferredRegion)
	if region == "" {
		region = s.cfg.DefaultRegion
	}
	theme := enums.NormalizeTheme(strings.TrimSpace(input.Theme))

	pref := &models.UserPreference{
		UserID:          userID,
		PreferredRegion: region,
		Theme:           theme.String(),
	}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save preferences")
	}
	return FromModel(pref), nil
}
