package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/users"
	pkgAuth "github.com/mstanchev/pricewatch-backend/pkg/auth"
	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
	"github.com/mstanchev/pricewatch-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail   map[string]*models.User
	byID      map[uuid.UUID]*models.User
	createErr error
	findErr   error
	created   *models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) TouchLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type stubSessionManager struct {
	generated  []string
	revoked    []string
	rotateErr  error
	generateFn func(accessID string) (string, error)
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	if s.generateFn != nil {
		return s.generateFn(accessID)
	}
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "new-" + oldAccessID, "refresh-new-" + oldAccessID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pricewatch-test",
		ExpirationMinutes: 15,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	return jwtCfg, pwCfg
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role enums.SystemRole) *models.User {
	t.Helper()
	_, pwCfg := testConfigs()
	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		SystemRole:   role,
		IsActive:     true,
	}
	repo.byEmail[email] = user
	repo.byID[user.ID] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)
	seedUser(t, repo, "shopper@example.com", "hunter2!pass", enums.SystemRoleUser)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Shopper@Example.com",
		Password: "hunter2!pass",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected access and refresh tokens")
	}
	if resp.User == nil || resp.User.IsAdmin {
		t.Fatal("expected a non-admin user payload")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session generated, got %d", len(sessions.generated))
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgAuth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("minted token did not parse: %v", err)
	}
	if claims.ID != sessions.generated[0] {
		t.Fatal("jti must match the generated session access id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, &stubSessionManager{})
	seedUser(t, repo, "shopper@example.com", "correct-password", enums.SystemRoleUser)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, &stubSessionManager{})
	user := seedUser(t, repo, "gone@example.com", "some-password", enums.SystemRoleUser)
	user.IsActive = false

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "gone@example.com",
		Password: "some-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	svc := newTestService(t, repo, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "long-enough-pass",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterIssuesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "long-enough-pass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if repo.created == nil || repo.created.Email != "new@example.com" {
		t.Fatal("expected normalized email on the created user")
	}
	if repo.created.SystemRole != enums.SystemRoleUser {
		t.Fatalf("expected user role, got %s", repo.created.SystemRole)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected tokens on registration")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)
	jwtCfg, _ := testConfigs()

	old, err := pkgAuth.MintAccessToken(jwtCfg, time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.SystemRoleUser,
		JTI:    "old-access",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  old,
		RefreshToken: "refresh-old-access",
	})
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("new token did not parse: %v", err)
	}
	if claims.ID != "new-old-access" {
		t.Fatalf("expected rotated jti, got %s", claims.ID)
	}
	if resp.RefreshToken != "refresh-new-old-access" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)
	jwtCfg, _ := testConfigs()

	token, err := pkgAuth.MintAccessToken(jwtCfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.SystemRoleUser,
		JTI:    "live-access",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if err := svc.Logout(context.Background(), LogoutRequest{AccessToken: token}); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "live-access" {
		t.Fatalf("expected live-access revoked, got %v", sessions.revoked)
	}
}

func TestMeDegradesOnLookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestService(t, repo, &stubSessionManager{})

	userID := uuid.New()
	dto, err := svc.Me(context.Background(), userID)
	if err != nil {
		t.Fatalf("Me should degrade, got error: %v", err)
	}
	if dto.IsAdmin {
		t.Fatal("degraded identity must not be admin")
	}
	if dto.ID != userID {
		t.Fatal("degraded identity keeps the token user id")
	}
}

func TestMeUnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo, &stubSessionManager{})

	_, err := svc.Me(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}
