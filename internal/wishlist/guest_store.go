package wishlist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	pkgredis "github.com/AdejohOS/feather-mart-sub001/pkg/redis"
	"github.com/google/uuid"
)

type guestSlot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	GuestWishlistKey(guestToken string) string
}

// GuestStore keeps a guest's wishlist as a single JSON blob of product ids.
// Same contract as the guest cart store: reads never fail, writes are
// best-effort, malformed blobs count as empty.
type GuestStore struct {
	slot guestSlot
	ttl  time.Duration
	logg *logger.Logger
}

// NewGuestStore builds a guest wishlist store with the given blob TTL.
func NewGuestStore(slot guestSlot, ttl time.Duration, logg *logger.Logger) *GuestStore {
	return &GuestStore{slot: slot, ttl: ttl, logg: logg}
}

// Read loads the saved product ids, degrading to empty on any failure.
func (s *GuestStore) Read(ctx context.Context, guestToken string) []uuid.UUID {
	if s == nil || s.slot == nil || guestToken == "" {
		return []uuid.UUID{}
	}
	raw, err := s.slot.Get(ctx, s.slot.GuestWishlistKey(guestToken))
	if err != nil {
		if !pkgredis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest wishlist read failed, using empty wishlist")
		}
		return []uuid.UUID{}
	}
	var blob guestBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "guest wishlist blob malformed, resetting to empty wishlist")
		}
		return []uuid.UUID{}
	}
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(blob.Items))
	for _, entry := range blob.Items {
		if entry.ProductID == uuid.Nil {
			continue
		}
		if _, dup := seen[entry.ProductID]; dup {
			continue
		}
		seen[entry.ProductID] = struct{}{}
		ids = append(ids, entry.ProductID)
	}
	return ids
}

// Write persists the product id list, refreshing its expiry.
func (s *GuestStore) Write(ctx context.Context, guestToken string, ids []uuid.UUID) {
	if s == nil || s.slot == nil || guestToken == "" {
		return
	}
	blob := guestBlob{Items: make([]guestEntry, 0, len(ids))}
	for _, id := range ids {
		blob.Items = append(blob.Items, guestEntry{ProductID: id})
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "marshal guest wishlist", err)
		}
		return
	}
	if err := s.slot.Set(ctx, s.slot.GuestWishlistKey(guestToken), string(raw), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest wishlist write failed")
	}
}

// Clear deletes the guest wishlist slot.
func (s *GuestStore) Clear(ctx context.Context, guestToken string) {
	if s == nil || s.slot == nil || guestToken == "" {
		return
	}
	if err := s.slot.Del(ctx, s.slot.GuestWishlistKey(guestToken)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest wishlist clear failed")
	}
}
