package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

func testRouterParams() Params {
	return Params{
		Config: &config.Config{
			JWT: config.JWTConfig{
				Secret:            "test-secret",
				Issuer:            "pricewatch-test",
				ExpirationMinutes: 15,
			},
		},
		Logger: logger.New(logger.Options{
			ServiceName: "pricewatch-test",
			Level:       zerolog.Disabled,
			Output:      io.Discard,
		}),
	}
}

func TestHealthLive(t *testing.T) {
	router := New(testRouterParams())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/live, got %d", rec.Code)
	}
}

func TestAuthenticatedRoutesRejectAnonymous(t *testing.T) {
	router := New(testRouterParams())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/stores"},
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPost, "/api/v1/prices"},
		{http.MethodGet, "/api/v1/preferences"},
		{http.MethodGet, "/api/v1/auth/me"},
	}
	for _, tc := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	router := New(testRouterParams())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/v1/moderation/pending", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous admin access, got %d", rec.Code)
	}
}
