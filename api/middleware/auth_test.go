package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/mstanchev/pricewatch-backend/pkg/auth"
	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

type stubSessionChecker struct {
	sessions map[string]bool
	err      error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.sessions[accessID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pricewatch-test",
		ExpirationMinutes: 15,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, role enums.SystemRole, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubSessionChecker{sessions: map[string]bool{"session-1": true}}

	var gotUserID, gotRole string
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.SystemRoleAdmin, "session-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID == "" {
		t.Fatal("expected user id in context")
	}
	if gotRole != enums.SystemRoleAdmin.String() {
		t.Fatalf("expected admin role in context, got %q", gotRole)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubSessionChecker{sessions: map[string]bool{}}

	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for revoked sessions")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.SystemRoleUser, "gone"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	cfg := testJWTConfig()

	var ran bool
	handler := OptionalAuth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		if UserIDFromContext(r.Context()) != "" {
			t.Fatal("anonymous request must not carry a user id")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !ran || rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous pass-through, ran=%v code=%d", ran, rec.Code)
	}
}

func TestOptionalAuthUpgradesValidToken(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubSessionChecker{sessions: map[string]bool{"session-2": true}}

	var gotRole string
	handler := OptionalAuth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.SystemRoleAdmin, "session-2"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotRole != enums.SystemRoleAdmin.String() {
		t.Fatalf("expected role to be seeded, got %q", gotRole)
	}
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	handler := RequireRole(enums.SystemRoleAdmin.String(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for non-admins")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), enums.SystemRoleUser.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
