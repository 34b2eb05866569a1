package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/api/validators"
	"github.com/mstanchev/pricewatch-backend/internal/stores"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

type createStoreRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Region   string  `json:"region" validate:"required,max=120"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=240"`
	Zip      *string `json:"zip,omitempty" validate:"omitempty,max=20"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	MapsURL  *string `json:"maps_url,omitempty" validate:"omitempty,url,max=2048"`
}

type updateStoreRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Region   *string `json:"region,omitempty" validate:"omitempty,max=120"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=240"`
	Zip      *string `json:"zip,omitempty" validate:"omitempty,max=20"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	MapsURL  *string `json:"maps_url,omitempty" validate:"omitempty,url,max=2048"`
}

// ListStores returns stores visible to the requester, optionally narrowed
// by region.
func ListStores(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), viewerFromRequest(r), r.URL.Query().Get("region"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CreateStore submits a new store.
func CreateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createStoreRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), actor, stores.CreateStoreInput{
			Name:     req.Name,
			Region:   req.Region,
			Address:  req.Address,
			Zip:      req.Zip,
			ImageURL: req.ImageURL,
			MapsURL:  req.MapsURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateStore mutates an existing store, owner or admin only.
func UpdateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateStoreRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), actor, storeID, stores.UpdateStoreInput{
			Name:     req.Name,
			Region:   req.Region,
			Address:  req.Address,
			Zip:      req.Zip,
			ImageURL: req.ImageURL,
			MapsURL:  req.MapsURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteStore removes a store and its observations, admin only.
func DeleteStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actor, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
