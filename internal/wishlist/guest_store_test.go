package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSlot struct {
	values map[string]string
	getErr error
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
	f.values[key] = value.(string)
	return nil
}

func (f *fakeSlot) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeSlot) GuestWishlistKey(guestToken string) string {
	return "test:guest:wishlist:" + guestToken
}

func TestGuestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	store := NewGuestStore(slot, time.Hour, nil)

	first := uuid.New()
	second := uuid.New()
	store.Write(context.Background(), "guest-token", []uuid.UUID{first, second})

	got := store.Read(context.Background(), "guest-token")
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestGuestStoreDeduplicatesAndDropsNilIDs(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	productID := uuid.New()
	blob := `{"items":[{"product_id":"` + productID.String() + `"},{"product_id":"` + productID.String() + `"},{"product_id":"00000000-0000-0000-0000-000000000000"}]}`
	slot.values[slot.GuestWishlistKey("guest-token")] = blob

	store := NewGuestStore(slot, time.Hour, nil)
	got := store.Read(context.Background(), "guest-token")
	if len(got) != 1 || got[0] != productID {
		t.Fatalf("expected single deduped id, got %v", got)
	}
}

func TestGuestStoreMalformedBlobYieldsEmptyList(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	slot.values[slot.GuestWishlistKey("guest-token")] = "[broken"
	store := NewGuestStore(slot, time.Hour, nil)

	if got := store.Read(context.Background(), "guest-token"); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestGuestStoreUnreachableSlotYieldsEmptyList(t *testing.T) {
	t.Parallel()

	slot := newFakeSlot()
	slot.getErr = errors.New("connection refused")
	store := NewGuestStore(slot, time.Hour, nil)

	if got := store.Read(context.Background(), "guest-token"); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}
