package preferences

import (
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// PreferencesDTO exposes per-user settings in API responses.
type PreferencesDTO struct {
	PreferredRegion string      `json:"preferred_region"`
	Theme           enums.Theme `json:"theme"`
}

// FromModel maps the persisted row into a DTO, folding unknown themes back
// to the system default.
func FromModel(m *models.UserPreference) *PreferencesDTO {
	if m == nil {
		return nil
	}
	return &PreferencesDTO{
		PreferredRegion: m.PreferredRegion,
		Theme:           enums.NormalizeTheme(m.Theme),
	}
}
