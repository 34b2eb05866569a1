package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type stubModerationRepo struct {
	stores   []models.Store
	products []models.Product
	statuses map[uuid.UUID]enums.ModerationStatus
	updates  map[uuid.UUID]enums.ModerationStatus
}

func newStubModerationRepo() *stubModerationRepo {
	return &stubModerationRepo{
		statuses: map[uuid.UUID]enums.ModerationStatus{},
		updates:  map[uuid.UUID]enums.ModerationStatus{},
	}
}

func (s *stubModerationRepo) ListPendingStores(_ context.Context) ([]models.Store, error) {
	return s.stores, nil
}

func (s *stubModerationRepo) ListPendingProducts(_ context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubModerationRepo) FindStatus(_ context.Context, _ enums.ModeratedKind, id uuid.UUID) (enums.ModerationStatus, error) {
	if status, ok := s.statuses[id]; ok {
		return status, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (s *stubModerationRepo) UpdateStatus(_ context.Context, _ enums.ModeratedKind, id uuid.UUID, status enums.ModerationStatus) error {
	s.statuses[id] = status
	s.updates[id] = status
	return nil
}

func mustService(t *testing.T, repo moderationRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestPendingQueueMergesByCreationTime(t *testing.T) {
	repo := newStubModerationRepo()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	olderStore := models.Store{
		ID:        uuid.New(),
		Name:      "Billa",
		Region:    "Тракия",
		Status:    enums.ModerationStatusPending,
		OwnerID:   uuid.New(),
		CreatedAt: base,
	}
	newerProduct := models.Product{
		ID:        uuid.New(),
		Name:      "Прясно мляко",
		Status:    enums.ModerationStatusPending,
		OwnerID:   uuid.New(),
		CreatedAt: base.Add(time.Hour),
	}
	repo.stores = []models.Store{olderStore}
	repo.products = []models.Product{newerProduct}
	svc := mustService(t, repo)

	queue, err := svc.PendingQueue(context.Background())
	if err != nil {
		t.Fatalf("PendingQueue returned error: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 queue items, got %d", len(queue))
	}
	if queue[0].Kind != enums.ModeratedKindStore || queue[0].ID != olderStore.ID {
		t.Fatalf("older store must come first, got %s %s", queue[0].Kind, queue[0].ID)
	}
	if queue[1].Kind != enums.ModeratedKindProduct || queue[1].ID != newerProduct.ID {
		t.Fatalf("newer product must come second, got %s %s", queue[1].Kind, queue[1].ID)
	}
}

func TestReviewApprovesPending(t *testing.T) {
	repo := newStubModerationRepo()
	id := uuid.New()
	repo.statuses[id] = enums.ModerationStatusPending
	svc := mustService(t, repo)

	if err := svc.Review(context.Background(), enums.ModeratedKindStore, id, enums.ModerationStatusApproved); err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if repo.updates[id] != enums.ModerationStatusApproved {
		t.Fatalf("expected status write, got %v", repo.updates[id])
	}
}

func TestReviewRejectsTerminalStates(t *testing.T) {
	repo := newStubModerationRepo()
	id := uuid.New()
	repo.statuses[id] = enums.ModerationStatusApproved
	svc := mustService(t, repo)

	err := svc.Review(context.Background(), enums.ModeratedKindProduct, id, enums.ModerationStatusRejected)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if _, ok := repo.updates[id]; ok {
		t.Fatal("terminal record must be left untouched")
	}
}

func TestReviewValidatesInput(t *testing.T) {
	repo := newStubModerationRepo()
	svc := mustService(t, repo)

	err := svc.Review(context.Background(), enums.ModeratedKind("user"), uuid.New(), enums.ModerationStatusApproved)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown kind, got %v", err)
	}

	id := uuid.New()
	repo.statuses[id] = enums.ModerationStatusPending
	err = svc.Review(context.Background(), enums.ModeratedKindStore, id, enums.ModerationStatusPending)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for pending target, got %v", err)
	}

	err = svc.Review(context.Background(), enums.ModeratedKindStore, uuid.New(), enums.ModerationStatusApproved)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown record, got %v", err)
	}
}
