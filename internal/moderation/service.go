package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type moderationRepository interface {
	ListPendingStores(ctx context.Context) ([]models.Store, error)
	ListPendingProducts(ctx context.Context) ([]models.Product, error)
	FindStatus(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID) (enums.ModerationStatus, error)
	UpdateStatus(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID, status enums.ModerationStatus) error
}

// Service exposes the admin review queue.
type Service interface {
	PendingQueue(ctx context.Context) ([]QueueItem, error)
	Review(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID, status enums.ModerationStatus) error
}

type service struct {
	repo moderationRepository
}

// NewService builds a moderation service with the provided repository.
func NewService(repo moderationRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("moderation repository required")
	}
	return &service{repo: repo}, nil
}

// PendingQueue merges pending stores and products into one sequence
// ordered by submission time, oldest first.
func (s *service) PendingQueue(ctx context.Context) ([]QueueItem, error) {
	stores, err := s.repo.ListPendingStores(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending stores")
	}
	products, err := s.repo.ListPendingProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending products")
	}

	queue := make([]QueueItem, 0, len(stores)+len(products))
	for i := range stores {
		queue = append(queue, itemFromStore(&stores[i]))
	}
	for i := range products {
		queue = append(queue, itemFromProduct(&products[i]))
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue, nil
}

// Review transitions a pending record to approved or rejected. Records
// already in a terminal state are left untouched.
func (s *service) Review(ctx context.Context, kind enums.ModeratedKind, id uuid.UUID, status enums.ModerationStatus) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown moderation kind")
	}
	if status != enums.ModerationStatusApproved && status != enums.ModerationStatusRejected {
		return pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	current, err := s.repo.FindStatus(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", kind))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load moderation status")
	}
	if current != enums.ModerationStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("record is already %s", current))
	}

	if err := s.repo.UpdateStatus(ctx, kind, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update moderation status")
	}
	return nil
}
