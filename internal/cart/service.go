package cart

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

// Service exposes cart operations for both guest and authenticated visitors.
// Every operation returns the full recomputed cart; callers replace their
// local copy wholesale rather than applying deltas.
type Service interface {
	Get(ctx context.Context, v auth.Visitor) (Cart, error)
	Add(ctx context.Context, v auth.Visitor, productID uuid.UUID, quantity int) (Cart, error)
	UpdateQuantity(ctx context.Context, v auth.Visitor, itemID string, quantity int) (Cart, error)
	Remove(ctx context.Context, v auth.Visitor, itemID string) (Cart, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	LineRepo    LineRepository
	GuestStore  GuestCartStore
	ProductRepo SnapshotLoader
	Logger      *logger.Logger
}

type service struct {
	lineRepo    LineRepository
	guestStore  GuestCartStore
	productRepo SnapshotLoader
	logg        *logger.Logger
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.LineRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line repo is required")
	}
	if params.GuestStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest store is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		lineRepo:    params.LineRepo,
		guestStore:  params.GuestStore,
		productRepo: params.ProductRepo,
		logg:        params.Logger,
	}, nil
}

// Get returns the visitor's cart with totals recomputed.
func (s *service) Get(ctx context.Context, v auth.Visitor) (Cart, error) {
	if v.IsAuthenticated() {
		return s.readUserCart(ctx, v.UserID)
	}
	return s.guestStore.Read(ctx, v.GuestToken), nil
}

// Add puts quantity units of a product in the cart, merging with any existing
// line for the same product. A merged quantity above current stock rejects
// the whole operation; no partial update occurs.
func (s *service) Add(ctx context.Context, v auth.Visitor, productID uuid.UUID, quantity int) (Cart, error) {
	if productID == uuid.Nil {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	snap, err := s.loadSnapshot(ctx, productID)
	if err != nil {
		return Empty(), err
	}

	if v.IsAuthenticated() {
		err := s.lineRepo.Transact(ctx, func(repo LineRepository) error {
			newQty := quantity
			existing, err := repo.FindByUserAndProduct(ctx, v.UserID, productID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
			}
			if existing != nil {
				newQty += existing.Quantity
			}
			if err := ensureStock(snap.Stock, newQty, productID); err != nil {
				return err
			}
			if err := repo.UpsertQuantity(ctx, v.UserID, productID, newQty); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
			}
			return nil
		})
		if err != nil {
			return Empty(), err
		}
		return s.readUserCart(ctx, v.UserID)
	}

	if err := requireGuestToken(v); err != nil {
		return Empty(), err
	}
	current := s.guestStore.Read(ctx, v.GuestToken)
	items := current.Items
	merged := false
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		newQty := items[i].Quantity + quantity
		if err := ensureStock(snap.Stock, newQty, productID); err != nil {
			return Empty(), err
		}
		items[i] = ItemFromSnapshot(items[i].ID, snap, newQty)
		merged = true
		break
	}
	if !merged {
		if err := ensureStock(snap.Stock, quantity, productID); err != nil {
			return Empty(), err
		}
		items = append(items, ItemFromSnapshot(uuid.NewString(), snap, quantity))
	}
	next := Recompute(items)
	s.guestStore.Write(ctx, v.GuestToken, next)
	return next, nil
}

// UpdateQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line instead of storing a zero.
func (s *service) UpdateQuantity(ctx context.Context, v auth.Visitor, itemID string, quantity int) (Cart, error) {
	if itemID == "" {
		return Empty(), pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	if v.IsAuthenticated() {
		return s.updateUserQuantity(ctx, v.UserID, itemID, quantity)
	}

	if err := requireGuestToken(v); err != nil {
		return Empty(), err
	}
	current := s.guestStore.Read(ctx, v.GuestToken)
	items := make([]Item, 0, len(current.Items))
	for _, item := range current.Items {
		if item.ID != itemID {
			items = append(items, item)
			continue
		}
		if quantity <= 0 {
			continue
		}
		snap, err := s.loadSnapshot(ctx, item.ProductID)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				continue
			}
			return Empty(), err
		}
		if err := ensureStock(snap.Stock, quantity, item.ProductID); err != nil {
			return Empty(), err
		}
		items = append(items, ItemFromSnapshot(item.ID, snap, quantity))
	}
	next := Recompute(items)
	s.guestStore.Write(ctx, v.GuestToken, next)
	return next, nil
}

// Remove deletes a line entirely.
func (s *service) Remove(ctx context.Context, v auth.Visitor, itemID string) (Cart, error) {
	return s.UpdateQuantity(ctx, v, itemID, 0)
}

func (s *service) updateUserQuantity(ctx context.Context, userID uuid.UUID, itemID string, quantity int) (Cart, error) {
	lineID, err := uuid.Parse(itemID)
	if err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}

	row, err := s.lineRepo.FindByID(ctx, userID, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone; removal of an absent line is not an error.
			return s.readUserCart(ctx, userID)
		}
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	if quantity <= 0 {
		if err := s.lineRepo.DeleteByID(ctx, userID, lineID); err != nil {
			return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
		}
		return s.readUserCart(ctx, userID)
	}

	snap, err := s.loadSnapshot(ctx, row.ProductID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			// Product vanished; the line would be dropped on read anyway.
			if err := s.lineRepo.DeleteByID(ctx, userID, lineID); err != nil {
				return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
			}
			return s.readUserCart(ctx, userID)
		}
		return Empty(), err
	}
	if err := ensureStock(snap.Stock, quantity, row.ProductID); err != nil {
		return Empty(), err
	}
	if err := s.lineRepo.UpsertQuantity(ctx, userID, row.ProductID, quantity); err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
	}
	return s.readUserCart(ctx, userID)
}

// readUserCart joins cart lines to their live product snapshots. Lines whose
// product no longer exists are dropped from the result, not surfaced.
func (s *service) readUserCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	rows, err := s.lineRepo.ListByUser(ctx, userID)
	if err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	snaps, err := s.productRepo.Snapshots(ctx, ids)
	if err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product snapshots")
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		snap, ok := snaps[row.ProductID]
		if !ok {
			// The row would never render again; reclaim it on the way past.
			if err := s.lineRepo.DeleteByProduct(ctx, userID, row.ProductID); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "stale cart line cleanup failed")
			}
			continue
		}
		items = append(items, ItemFromSnapshot(row.ID.String(), snap, row.Quantity))
	}
	return Recompute(items), nil
}

func (s *service) loadSnapshot(ctx context.Context, productID uuid.UUID) (*products.Snapshot, error) {
	loaded, err := s.productRepo.Snapshot(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return loaded, nil
}

func ensureStock(stock, requested int, productID uuid.UUID) error {
	if requested <= stock {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStockExceeded, "not enough stock").
		WithDetails(map[string]any{
			"product_id": productID,
			"stock":      stock,
			"requested":  requested,
		})
}

func requireGuestToken(v auth.Visitor) error {
	if v.GuestToken == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "guest token is required")
	}
	return nil
}
