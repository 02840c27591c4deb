package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSlot struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeSlot() *fakeSlot {
	return &fakeSlot{values: map[string]string{}}
}

func (f *fakeSlot) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", errors.New("redis: nil")
}

func (f *fakeSlot) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value.(string)
	return nil
}

func (f *fakeSlot) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeSlot) GuestCartKey(guestToken string) string {
	return "test:guest:cart:" + guestToken
}

func TestGuestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	store := NewGuestStore(slot, time.Hour, nil)

	written := Recompute([]Item{{
		ID:             uuid.NewString(),
		ProductID:      uuid.New(),
		Name:           "Feed bags",
		UnitPriceCents: 1200,
		Quantity:       3,
		Unit:           "bag",
	}})
	store.Write(context.Background(), "guest-token", written)

	got := store.Read(context.Background(), "guest-token")
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if got.SubtotalCents != 3600 || got.TotalItems != 3 {
		t.Fatalf("totals not recomputed: %+v", got)
	}
}

func TestGuestStoreMalformedBlobYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	slot.values[slot.GuestCartKey("guest-token")] = "{not json"
	store := NewGuestStore(slot, time.Hour, nil)

	got := store.Read(context.Background(), "guest-token")
	if len(got.Items) != 0 || got.SubtotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestGuestStoreUnreachableSlotYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	slot.getErr = errors.New("connection refused")
	store := NewGuestStore(slot, time.Hour, nil)

	got := store.Read(context.Background(), "guest-token")
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestGuestStoreReadFoldsTamperedDuplicateLines(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	productID := uuid.New()
	tampered := Cart{
		Items: []Item{
			{ID: uuid.NewString(), ProductID: productID, UnitPriceCents: 100, Quantity: 2},
			{ID: uuid.NewString(), ProductID: productID, UnitPriceCents: 100, Quantity: 3},
			{ID: uuid.NewString(), ProductID: uuid.New(), UnitPriceCents: 100, Quantity: 0},
			{ID: uuid.NewString(), ProductID: uuid.New(), UnitPriceCents: 100, Quantity: -4},
			{ID: uuid.NewString(), ProductID: uuid.Nil, UnitPriceCents: 100, Quantity: 1},
		},
	}
	raw, err := json.Marshal(tampered)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	slot.values[slot.GuestCartKey("guest-token")] = string(raw)

	store := NewGuestStore(slot, time.Hour, nil)
	got := store.Read(context.Background(), "guest-token")

	if len(got.Items) != 1 {
		t.Fatalf("expected one line per product, got %+v", got.Items)
	}
	if got.Items[0].ProductID != productID || got.Items[0].Quantity != 5 {
		t.Fatalf("expected duplicates folded to quantity 5, got %+v", got.Items[0])
	}
	if got.SubtotalCents != 500 || got.TotalItems != 5 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestGuestStoreIgnoresStoredTotals(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	tampered := Cart{
		Items: []Item{{
			ID:             uuid.NewString(),
			ProductID:      uuid.New(),
			UnitPriceCents: 100,
			Quantity:       2,
		}},
		SubtotalCents: 1,
		TotalItems:    99,
	}
	raw, err := json.Marshal(tampered)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	slot.values[slot.GuestCartKey("guest-token")] = string(raw)

	store := NewGuestStore(slot, time.Hour, nil)
	got := store.Read(context.Background(), "guest-token")
	if got.SubtotalCents != 200 || got.TotalItems != 2 {
		t.Fatalf("expected totals re-derived, got %+v", got)
	}
}
