package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	pkgredis "github.com/AdejohOS/feather-mart-sub001/pkg/redis"
	"github.com/google/uuid"
)

// guestSlot is the key/value surface the guest store needs from pkg/redis.
type guestSlot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	GuestCartKey(guestToken string) string
}

// GuestStore keeps a guest's cart as a single JSON blob in Redis, addressed
// by the anonymous guest token. Read never fails: an absent key, a malformed
// blob, or the slot being unreachable all yield the empty cart. Write is
// best-effort and swallows environment errors after logging them.
type GuestStore struct {
	slot guestSlot
	ttl  time.Duration
	logg *logger.Logger
}

// NewGuestStore builds a guest cart store with the given blob TTL.
func NewGuestStore(slot guestSlot, ttl time.Duration, logg *logger.Logger) *GuestStore {
	return &GuestStore{slot: slot, ttl: ttl, logg: logg}
}

// Read loads the guest cart, degrading to the empty cart on any failure.
func (s *GuestStore) Read(ctx context.Context, guestToken string) Cart {
	if s == nil || s.slot == nil || guestToken == "" {
		return Empty()
	}
	raw, err := s.slot.Get(ctx, s.slot.GuestCartKey(guestToken))
	if err != nil {
		if !pkgredis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest cart read failed, using empty cart")
		}
		return Empty()
	}
	var stored Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "guest cart blob malformed, resetting to empty cart")
		}
		return Empty()
	}
	// Nothing from the blob is trusted as-is: lines are re-folded to one per
	// product and totals re-derived.
	return normalize(stored.Items)
}

// normalize drops unusable lines from an untrusted blob and folds duplicate
// product lines into the first occurrence, matching how adds merge.
func normalize(items []Item) Cart {
	index := map[uuid.UUID]int{}
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil || item.Quantity <= 0 {
			continue
		}
		if i, dup := index[item.ProductID]; dup {
			kept[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(kept)
		kept = append(kept, item)
	}
	return Recompute(kept)
}

// Write persists the guest cart blob, refreshing its expiry.
func (s *GuestStore) Write(ctx context.Context, guestToken string, c Cart) {
	if s == nil || s.slot == nil || guestToken == "" {
		return
	}
	raw, err := json.Marshal(c)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "marshal guest cart", err)
		}
		return
	}
	if err := s.slot.Set(ctx, s.slot.GuestCartKey(guestToken), string(raw), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest cart write failed")
	}
}

// Clear deletes the guest cart slot.
func (s *GuestStore) Clear(ctx context.Context, guestToken string) {
	if s == nil || s.slot == nil || guestToken == "" {
		return
	}
	if err := s.slot.Del(ctx, s.slot.GuestCartKey(guestToken)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest cart clear failed")
	}
}
