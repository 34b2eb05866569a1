package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/api/middleware"
	"github.com/mstanchev/pricewatch-backend/internal/authz"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

// actorFromRequest materializes the authenticated actor from request
// context values seeded by the auth middleware.
func actorFromRequest(r *http.Request) (authz.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return authz.Actor{
		UserID:  userID,
		IsAdmin: middleware.IsAdminFromContext(r.Context()),
	}, nil
}

// viewerFromRequest builds an actor for read endpoints that are open to
// anonymous traffic. Unauthenticated viewers get a zero actor and see only
// approved records.
func viewerFromRequest(r *http.Request) authz.Actor {
	actor, err := actorFromRequest(r)
	if err != nil {
		return authz.Actor{}
	}
	return actor
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "must be a valid uuid").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
