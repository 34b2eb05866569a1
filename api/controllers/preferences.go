package controllers

import (
	"net/http"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/api/validators"
	"github.com/mstanchev/pricewatch-backend/internal/preferences"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

type putPreferencesRequest struct {
	PreferredRegion string `json:"preferred_region,omitempty" validate:"omitempty,max=120"`
	Theme           string `json:"theme,omitempty" validate:"omitempty,max=32"`
}

// GetPreferences returns the caller's saved settings or the defaults.
func GetPreferences(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pref, err := svc.Get(r.Context(), actor.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pref)
	}
}

// PutPreferences upserts the caller's settings row.
func PutPreferences(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req putPreferencesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := svc.Put(r.Context(), actor.UserID, preferences.PutPreferencesInput{
			PreferredRegion: req.PreferredRegion,
			Theme:           req.Theme,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}
