package controllers

import (
	"net/http"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/internal/dashboard"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

// DashboardStats returns the public landing page counters.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
