package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
)

func TestReconcilerMergesGuestWishlist(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	repo := newStubEntryRepo()
	guestStore := newMemGuestStore()
	guestStore.Write(context.Background(), "guest-token", []uuid.UUID{productID})

	rec := newTestReconciler(t, repo, guestStore, catalogWith(snapshot(productID, 900, 4)))

	report, err := rec.Run(context.Background(), userID, "guest-token")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Merged) != 1 || report.Merged[0] != productID {
		t.Fatalf("unexpected report: %+v", report)
	}

	saved, err := repo.Contains(context.Background(), userID, productID)
	if err != nil || !saved {
		t.Fatalf("expected entry persisted, saved=%v err=%v", saved, err)
	}
	if got := guestStore.Read(context.Background(), "guest-token"); len(got) != 0 {
		t.Fatalf("expected guest slot cleared, got %v", got)
	}
}

func TestReconcilerUnionWithExistingEntries(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sharedID := uuid.New()
	guestOnlyID := uuid.New()

	repo := newStubEntryRepo()
	repo.seed(userID, sharedID)
	guestStore := newMemGuestStore()
	guestStore.Write(context.Background(), "guest-token", []uuid.UUID{sharedID, guestOnlyID})

	rec := newTestReconciler(t, repo, guestStore, catalogWith(
		snapshot(sharedID, 900, 4),
		snapshot(guestOnlyID, 500, 2),
	))

	report, err := rec.Run(context.Background(), userID, "guest-token")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Merged) != 1 || report.Merged[0] != guestOnlyID {
		t.Fatalf("unexpected merged set: %+v", report.Merged)
	}
	// The entry the user already saved goes to the skip report, not merged.
	if len(report.Skipped) != 1 || report.Skipped[0].ProductID != sharedID {
		t.Fatalf("unexpected skipped set: %+v", report.Skipped)
	}

	ids, err := repo.ListProductIDs(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected union of 2 entries, got %v", ids)
	}
}

func TestReconcilerSecondRunIsNoop(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	repo := newStubEntryRepo()
	guestStore := newMemGuestStore()
	guestStore.Write(context.Background(), "guest-token", []uuid.UUID{productID})

	rec := newTestReconciler(t, repo, guestStore, catalogWith(snapshot(productID, 900, 4)))

	if _, err := rec.Run(context.Background(), userID, "guest-token"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := rec.Run(context.Background(), userID, "guest-token")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(report.Merged) != 0 || len(report.Skipped) != 0 {
		t.Fatalf("expected empty second report, got %+v", report)
	}
}

func TestReconcilerSkipsVanishedProducts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	liveID := uuid.New()
	goneID := uuid.New()

	repo := newStubEntryRepo()
	guestStore := newMemGuestStore()
	guestStore.Write(context.Background(), "guest-token", []uuid.UUID{liveID, goneID})

	rec := newTestReconciler(t, repo, guestStore, catalogWith(snapshot(liveID, 900, 4)))

	report, err := rec.Run(context.Background(), userID, "guest-token")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Merged) != 1 || report.Merged[0] != liveID {
		t.Fatalf("unexpected merged set: %+v", report.Merged)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].ProductID != goneID {
		t.Fatalf("unexpected skipped set: %+v", report.Skipped)
	}
}

func TestReconcilerRequiresUserID(t *testing.T) {
	t.Parallel()

	rec := newTestReconciler(t, newStubEntryRepo(), newMemGuestStore(), catalogWith())

	_, err := rec.Run(context.Background(), uuid.Nil, "guest-token")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func newTestReconciler(t *testing.T, repo *stubEntryRepo, guestStore *memGuestStore, catalog *stubSnapshotLoader) *Reconciler {
	t.Helper()
	rec, err := NewReconciler(repo, guestStore, catalog, nil)
	if err != nil {
		t.Fatalf("new reconciler: %v", err)
	}
	return rec
}
