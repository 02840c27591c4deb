package cart

import (
	"context"
	"errors"

	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkippedItem records one guest line the merge could not fold in.
type SkippedItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// MergeReport collects the per-item outcome of a merge run.
type MergeReport struct {
	Merged  []uuid.UUID   `json:"merged"`
	Skipped []SkippedItem `json:"skipped"`
}

// Reconciler folds a guest cart into a user's persisted cart at sign-in.
// The loop is per-item and failure-tolerant: a line that cannot be merged is
// logged and skipped, and the guest slot is cleared unconditionally at the
// end. Running it again against the emptied slot is a no-op, so a double
// fired sign-in event cannot double-merge.
type Reconciler struct {
	lineRepo    LineRepository
	guestStore  GuestCartStore
	productRepo SnapshotLoader
	logg        *logger.Logger
}

// NewReconciler builds a cart merge reconciler.
func NewReconciler(lineRepo LineRepository, guestStore GuestCartStore, productRepo SnapshotLoader, logg *logger.Logger) (*Reconciler, error) {
	if lineRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line repo is required")
	}
	if guestStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest store is required")
	}
	if productRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &Reconciler{
		lineRepo:    lineRepo,
		guestStore:  guestStore,
		productRepo: productRepo,
		logg:        logg,
	}, nil
}

// Run merges the guest cart addressed by guestToken into userID's rows.
func (r *Reconciler) Run(ctx context.Context, userID uuid.UUID, guestToken string) (MergeReport, error) {
	report := MergeReport{Merged: []uuid.UUID{}, Skipped: []SkippedItem{}}
	if userID == uuid.Nil {
		return report, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	guestCart := r.guestStore.Read(ctx, guestToken)
	if len(guestCart.Items) == 0 {
		return report, nil
	}

	for _, item := range guestCart.Items {
		if err := r.mergeItem(ctx, userID, item); err != nil {
			reason := err.Error()
			if typed := pkgerrors.As(err); typed != nil {
				reason = typed.Message()
			}
			report.Skipped = append(report.Skipped, SkippedItem{ProductID: item.ProductID, Reason: reason})
			if r.logg != nil {
				fields := map[string]any{"product_id": item.ProductID.String(), "reason": reason}
				r.logg.Warn(r.logg.WithFields(ctx, fields), "cart merge skipped item")
			}
			continue
		}
		report.Merged = append(report.Merged, item.ProductID)
	}

	r.guestStore.Clear(ctx, guestToken)
	return report, nil
}

func (r *Reconciler) mergeItem(ctx context.Context, userID uuid.UUID, item Item) error {
	snap, err := r.productRepo.Snapshot(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer available")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	return r.lineRepo.Transact(ctx, func(repo LineRepository) error {
		target := item.Quantity
		existing, err := repo.FindByUserAndProduct(ctx, userID, item.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}
		if existing != nil {
			target += existing.Quantity
		}

		// Merges clamp instead of rejecting; the sign-in flow has no user to ask.
		if target > snap.Stock {
			target = snap.Stock
		}
		if target < 1 {
			return pkgerrors.New(pkgerrors.CodeStockExceeded, "product out of stock")
		}

		if err := repo.UpsertQuantity(ctx, userID, item.ProductID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
		}
		return nil
	})
}
