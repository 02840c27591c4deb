package wishlist

import (
	"context"
	"errors"

	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryRepository defines the persistence surface for authenticated
// wishlist entries.
type EntryRepository interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

// SnapshotLoader resolves live product display data.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, id uuid.UUID) (*products.Snapshot, error)
	Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*products.Snapshot, error)
}

// GuestWishlistStore is the browser-scoped side of the dual backend.
type GuestWishlistStore interface {
	Read(ctx context.Context, guestToken string) []uuid.UUID
	Write(ctx context.Context, guestToken string, ids []uuid.UUID)
	Clear(ctx context.Context, guestToken string)
}

// Service exposes wishlist operations for guest and authenticated visitors.
// Add is idempotent; membership is boolean.
type Service interface {
	Get(ctx context.Context, v auth.Visitor) (Wishlist, error)
	Add(ctx context.Context, v auth.Visitor, productID uuid.UUID) (Wishlist, error)
	Remove(ctx context.Context, v auth.Visitor, productID uuid.UUID) (Wishlist, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	EntryRepo   EntryRepository
	GuestStore  GuestWishlistStore
	ProductRepo SnapshotLoader
	Logger      *logger.Logger
}

type service struct {
	entryRepo   EntryRepository
	guestStore  GuestWishlistStore
	productRepo SnapshotLoader
	logg        *logger.Logger
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EntryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.GuestStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest store is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		entryRepo:   params.EntryRepo,
		guestStore:  params.GuestStore,
		productRepo: params.ProductRepo,
		logg:        params.Logger,
	}, nil
}

// Get returns the visitor's wishlist hydrated with live product data.
// Saved products that no longer exist are dropped from the result.
func (s *service) Get(ctx context.Context, v auth.Visitor) (Wishlist, error) {
	var ids []uuid.UUID
	if v.IsAuthenticated() {
		stored, err := s.entryRepo.ListProductIDs(ctx, v.UserID)
		if err != nil {
			return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist entries")
		}
		ids = stored
	} else {
		ids = s.guestStore.Read(ctx, v.GuestToken)
	}
	return s.hydrate(ctx, ids)
}

// Add saves a product; adding an already-saved product is a no-op.
func (s *service) Add(ctx context.Context, v auth.Visitor, productID uuid.UUID) (Wishlist, error) {
	if productID == uuid.Nil {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.Snapshot(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Empty(), pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if v.IsAuthenticated() {
		if err := s.entryRepo.AddItem(ctx, v.UserID, productID); err != nil {
			return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist entry")
		}
		return s.Get(ctx, v)
	}

	if v.GuestToken == "" {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "guest token is required")
	}
	ids := s.guestStore.Read(ctx, v.GuestToken)
	for _, id := range ids {
		if id == productID {
			return s.hydrate(ctx, ids)
		}
	}
	ids = append(ids, productID)
	s.guestStore.Write(ctx, v.GuestToken, ids)
	return s.hydrate(ctx, ids)
}

// Remove drops the entry regardless of prior state.
func (s *service) Remove(ctx context.Context, v auth.Visitor, productID uuid.UUID) (Wishlist, error) {
	if productID == uuid.Nil {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if v.IsAuthenticated() {
		if err := s.entryRepo.RemoveItem(ctx, v.UserID, productID); err != nil {
			return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist entry")
		}
		return s.Get(ctx, v)
	}

	if v.GuestToken == "" {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "guest token is required")
	}
	ids := s.guestStore.Read(ctx, v.GuestToken)
	kept := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.guestStore.Write(ctx, v.GuestToken, kept)
	return s.hydrate(ctx, kept)
}

func (s *service) hydrate(ctx context.Context, ids []uuid.UUID) (Wishlist, error) {
	snaps, err := s.productRepo.Snapshots(ctx, ids)
	if err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product snapshots")
	}
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		snap, ok := snaps[id]
		if !ok {
			continue
		}
		items = append(items, ItemFromSnapshot(snap))
	}
	return Wishlist{Items: items}, nil
}
