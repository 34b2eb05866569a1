package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/api/validators"
	"github.com/mstanchev/pricewatch-backend/internal/moderation"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

type reviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// PendingModeration returns the merged review queue, oldest first.
func PendingModeration(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queue, err := svc.PendingQueue(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, queue)
	}
}

// ReviewModeration approves or rejects one pending submission.
func ReviewModeration(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := enums.ParseModeratedKind(chi.URLParam(r, "kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "kind must be store or product"))
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req reviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseModerationStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected"))
			return
		}
		if err := svc.Review(r.Context(), kind, id, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": status.String()})
	}
}
