package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstanchev/pricewatch-backend/internal/authz"
	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
)

type stubStoreRepo struct {
	stores        map[uuid.UUID]*models.Store
	lastListAll   bool
	lastRegion    string
	deleted       []uuid.UUID
	updatedStores []*models.Store
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: map[uuid.UUID]*models.Store{}}
}

func (s *stubStoreRepo) List(_ context.Context, includeUnapproved bool, region string) ([]models.Store, error) {
	s.lastListAll = includeUnapproved
	s.lastRegion = region
	var out []models.Store
	for _, store := range s.stores {
		if !includeUnapproved && store.Status != enums.ModerationStatusApproved {
			continue
		}
		if region != "" && store.Region != region {
			continue
		}
		out = append(out, *store)
	}
	return out, nil
}

func (s *stubStoreRepo) Create(_ context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	store.ID = uuid.New()
	s.stores[store.ID] = store
	return store, nil
}

func (s *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	if store, ok := s.stores[id]; ok {
		cpy := *store
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStoreRepo) Update(_ context.Context, store *models.Store) error {
	s.stores[store.ID] = store
	s.updatedStores = append(s.updatedStores, store)
	return nil
}

func (s *stubStoreRepo) DeleteWithPrices(_ context.Context, id uuid.UUID) error {
	delete(s.stores, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func seedStore(repo *stubStoreRepo, owner uuid.UUID, status enums.ModerationStatus) *models.Store {
	store := &models.Store{
		ID:      uuid.New(),
		Name:    "Billa",
		Region:  "Тракия",
		Status:  status,
		OwnerID: owner,
	}
	repo.stores[store.ID] = store
	return store
}

func mustService(t *testing.T, repo storeRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestListHidesPendingFromNonAdmins(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)
	owner := uuid.New()
	seedStore(repo, owner, enums.ModerationStatusApproved)
	seedStore(repo, owner, enums.ModerationStatusPending)

	viewer := authz.Actor{UserID: uuid.New()}
	result, err := svc.List(context.Background(), viewer, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 visible store, got %d", len(result))
	}
	if repo.lastListAll {
		t.Fatal("non-admin listing must not include unapproved rows")
	}

	admin := authz.Actor{UserID: uuid.New(), IsAdmin: true}
	result, err = svc.List(context.Background(), admin, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected admin to see 2 stores, got %d", len(result))
	}
}

func TestCreateSetsInitialStatusByRole(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)

	user := authz.Actor{UserID: uuid.New()}
	created, err := svc.Create(context.Background(), user, CreateStoreInput{Name: "Kaufland", Region: "Центъра"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != enums.ModerationStatusPending {
		t.Fatalf("user submission should be pending, got %s", created.Status)
	}
	if created.OwnerID != user.UserID {
		t.Fatal("owner must be the submitting user")
	}

	admin := authz.Actor{UserID: uuid.New(), IsAdmin: true}
	created, err = svc.Create(context.Background(), admin, CreateStoreInput{Name: "Lidl", Region: "Центъра"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != enums.ModerationStatusApproved {
		t.Fatalf("admin submission should be approved, got %s", created.Status)
	}
}

func TestCreateCarriesLocationFields(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)

	zip := "4000"
	imageURL := "https://cdn.example.com/billa.jpg"
	mapsURL := "https://maps.example.com/?q=billa+trakia"
	created, err := svc.Create(context.Background(), authz.Actor{UserID: uuid.New()}, CreateStoreInput{
		Name:     "Billa",
		Region:   "Тракия",
		Zip:      &zip,
		ImageURL: &imageURL,
		MapsURL:  &mapsURL,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Zip == nil || *created.Zip != zip {
		t.Fatalf("expected zip %q to persist, got %v", zip, created.Zip)
	}
	if created.ImageURL == nil || *created.ImageURL != imageURL {
		t.Fatalf("expected image url to persist, got %v", created.ImageURL)
	}
	if created.MapsURL == nil || *created.MapsURL != mapsURL {
		t.Fatalf("expected maps url to persist, got %v", created.MapsURL)
	}

	stored := repo.stores[created.ID]
	if stored.Zip == nil || stored.ImageURL == nil || stored.MapsURL == nil {
		t.Fatal("expected all location fields on the stored row")
	}
}

func TestUpdateMergesLocationFields(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)
	owner := uuid.New()
	store := seedStore(repo, owner, enums.ModerationStatusApproved)
	zip := "4023"
	store.Zip = &zip

	mapsURL := "https://maps.example.com/?q=billa"
	updated, err := svc.Update(context.Background(), authz.Actor{UserID: owner}, store.ID, UpdateStoreInput{MapsURL: &mapsURL})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.MapsURL == nil || *updated.MapsURL != mapsURL {
		t.Fatalf("expected maps url to be set, got %v", updated.MapsURL)
	}
	if updated.Zip == nil || *updated.Zip != zip {
		t.Fatal("untouched zip must survive a partial update")
	}
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)
	owner := uuid.New()
	store := seedStore(repo, owner, enums.ModerationStatusApproved)

	newName := "Billa Тракия"
	_, err := svc.Update(context.Background(), authz.Actor{UserID: uuid.New()}, store.ID, UpdateStoreInput{Name: &newName})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), authz.Actor{UserID: owner}, store.ID, UpdateStoreInput{Name: &newName})
	if err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	other := "Billa Център"
	updated, err = svc.Update(context.Background(), authz.Actor{UserID: uuid.New(), IsAdmin: true}, store.ID, UpdateStoreInput{Name: &other})
	if err != nil {
		t.Fatalf("admin update returned error: %v", err)
	}
	if updated.Name != other {
		t.Fatalf("expected admin update to land, got %q", updated.Name)
	}
}

func TestDeleteAdminOnly(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)
	owner := uuid.New()
	store := seedStore(repo, owner, enums.ModerationStatusApproved)

	err := svc.Delete(context.Background(), authz.Actor{UserID: owner}, store.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), authz.Actor{UserID: uuid.New(), IsAdmin: true}, store.ID); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != store.ID {
		t.Fatal("expected the store to be deleted with its prices")
	}
}

func TestDeleteUnknownStore(t *testing.T) {
	repo := newStubStoreRepo()
	svc := mustService(t, repo)

	err := svc.Delete(context.Background(), authz.Actor{UserID: uuid.New(), IsAdmin: true}, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
