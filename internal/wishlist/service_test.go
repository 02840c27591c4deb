package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
)

func TestServiceAddGuestIsIdempotent(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc := newTestService(t, catalogWith(snapshot(productID, 900, 4)), nil)
	visitor := auth.Guest("guest-token")

	if _, err := svc.Add(context.Background(), visitor, productID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	got, err := svc.Add(context.Background(), visitor, productID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected single entry, got %d", len(got.Items))
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, catalogWith(), nil)

	_, err := svc.Add(context.Background(), auth.Guest("guest-token"), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceRemoveAbsentEntryIsNoop(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc := newTestService(t, catalogWith(snapshot(productID, 900, 4)), nil)
	visitor := auth.Guest("guest-token")

	if _, err := svc.Add(context.Background(), visitor, productID); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.Remove(context.Background(), visitor, uuid.New())
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected entry to survive, got %d", len(got.Items))
	}
}

func TestServiceGetDropsVanishedProducts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	liveID := uuid.New()
	goneID := uuid.New()

	repo := newStubEntryRepo()
	repo.seed(userID, liveID)
	repo.seed(userID, goneID)

	svc := newTestService(t, catalogWith(snapshot(liveID, 900, 4)), repo)

	got, err := svc.Get(context.Background(), auth.User(userID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != liveID {
		t.Fatalf("expected only live product, got %+v", got.Items)
	}
}

func TestServiceAuthAddIsIdempotent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	repo := newStubEntryRepo()
	svc := newTestService(t, catalogWith(snapshot(productID, 900, 4)), repo)
	visitor := auth.User(userID)

	if _, err := svc.Add(context.Background(), visitor, productID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	got, err := svc.Add(context.Background(), visitor, productID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected single entry, got %d", len(got.Items))
	}
}

func TestServicePriceReflectsDiscount(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	snap := snapshot(productID, 1000, 4)
	discount := 800
	snap.DiscountPriceCents = &discount
	svc := newTestService(t, catalogWith(snap), nil)

	got, err := svc.Add(context.Background(), auth.Guest("guest-token"), productID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Items[0].PriceCents != 800 {
		t.Fatalf("expected discounted price, got %d", got.Items[0].PriceCents)
	}
}

func newTestService(t *testing.T, catalog *stubSnapshotLoader, repo *stubEntryRepo) Service {
	t.Helper()
	if repo == nil {
		repo = newStubEntryRepo()
	}
	svc, err := NewService(ServiceParams{
		EntryRepo:   repo,
		GuestStore:  newMemGuestStore(),
		ProductRepo: catalog,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func snapshot(id uuid.UUID, priceCents, stock int) *products.Snapshot {
	return &products.Snapshot{
		ID:         id,
		Name:       "Point-of-lay pullets",
		FarmName:   "Sunrise Farm",
		Unit:       "bird",
		PriceCents: priceCents,
		Stock:      stock,
	}
}

func catalogWith(snaps ...*products.Snapshot) *stubSnapshotLoader {
	loader := &stubSnapshotLoader{byID: map[uuid.UUID]*products.Snapshot{}}
	for _, snap := range snaps {
		loader.byID[snap.ID] = snap
	}
	return loader
}

type stubSnapshotLoader struct {
	byID map[uuid.UUID]*products.Snapshot
}

func (s *stubSnapshotLoader) Snapshot(ctx context.Context, id uuid.UUID) (*products.Snapshot, error) {
	if snap, ok := s.byID[id]; ok {
		return snap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSnapshotLoader) Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*products.Snapshot, error) {
	out := map[uuid.UUID]*products.Snapshot{}
	for _, id := range ids {
		if snap, ok := s.byID[id]; ok {
			out[id] = snap
		}
	}
	return out, nil
}

type entryKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type stubEntryRepo struct {
	order   []entryKey
	present map[entryKey]bool
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{present: map[entryKey]bool{}}
}

func (s *stubEntryRepo) seed(userID, productID uuid.UUID) {
	key := entryKey{userID: userID, productID: productID}
	if !s.present[key] {
		s.present[key] = true
		s.order = append(s.order, key)
	}
}

func (s *stubEntryRepo) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	s.seed(userID, productID)
	return nil
}

func (s *stubEntryRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	key := entryKey{userID: userID, productID: productID}
	if !s.present[key] {
		return nil
	}
	delete(s.present, key)
	kept := s.order[:0]
	for _, k := range s.order {
		if k != key {
			kept = append(kept, k)
		}
	}
	s.order = kept
	return nil
}

func (s *stubEntryRepo) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, k := range s.order {
		if k.userID == userID {
			out = append(out, k.productID)
		}
	}
	return out, nil
}

func (s *stubEntryRepo) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.present[entryKey{userID: userID, productID: productID}], nil
}

func (s *stubEntryRepo) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	kept := s.order[:0]
	for _, k := range s.order {
		if k.userID == userID {
			delete(s.present, k)
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
	return nil
}

type memGuestStore struct {
	lists map[string][]uuid.UUID
}

func newMemGuestStore() *memGuestStore {
	return &memGuestStore{lists: map[string][]uuid.UUID{}}
}

func (m *memGuestStore) Read(ctx context.Context, guestToken string) []uuid.UUID {
	return append([]uuid.UUID{}, m.lists[guestToken]...)
}

func (m *memGuestStore) Write(ctx context.Context, guestToken string, ids []uuid.UUID) {
	m.lists[guestToken] = append([]uuid.UUID{}, ids...)
}

func (m *memGuestStore) Clear(ctx context.Context, guestToken string) {
	delete(m.lists, guestToken)
}
