package wishlist

import (
	"context"
	"errors"

	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkippedItem records one guest entry the merge could not fold in.
type SkippedItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// MergeReport collects the per-item outcome of a merge run.
type MergeReport struct {
	Merged  []uuid.UUID   `json:"merged"`
	Skipped []SkippedItem `json:"skipped"`
}

// Reconciler folds a guest wishlist into a user's saved entries at sign-in.
// The same loop-and-continue shape as the cart reconciler, minus the
// quantity clamp: an entry the user already saved goes to the skip report
// instead of counting as merged.
type Reconciler struct {
	entryRepo   EntryRepository
	guestStore  GuestWishlistStore
	productRepo SnapshotLoader
	logg        *logger.Logger
}

// NewReconciler builds a wishlist merge reconciler.
func NewReconciler(entryRepo EntryRepository, guestStore GuestWishlistStore, productRepo SnapshotLoader, logg *logger.Logger) (*Reconciler, error) {
	if entryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if guestStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest store is required")
	}
	if productRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &Reconciler{
		entryRepo:   entryRepo,
		guestStore:  guestStore,
		productRepo: productRepo,
		logg:        logg,
	}, nil
}

// Run merges the guest wishlist addressed by guestToken into userID's rows.
func (r *Reconciler) Run(ctx context.Context, userID uuid.UUID, guestToken string) (MergeReport, error) {
	report := MergeReport{Merged: []uuid.UUID{}, Skipped: []SkippedItem{}}
	if userID == uuid.Nil {
		return report, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	ids := r.guestStore.Read(ctx, guestToken)
	if len(ids) == 0 {
		return report, nil
	}

	for _, productID := range ids {
		if err := r.mergeEntry(ctx, userID, productID); err != nil {
			reason := err.Error()
			if typed := pkgerrors.As(err); typed != nil {
				reason = typed.Message()
			}
			report.Skipped = append(report.Skipped, SkippedItem{ProductID: productID, Reason: reason})
			if r.logg != nil {
				fields := map[string]any{"product_id": productID.String(), "reason": reason}
				r.logg.Warn(r.logg.WithFields(ctx, fields), "wishlist merge skipped item")
			}
			continue
		}
		report.Merged = append(report.Merged, productID)
	}

	r.guestStore.Clear(ctx, guestToken)
	return report, nil
}

func (r *Reconciler) mergeEntry(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := r.productRepo.Snapshot(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer available")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	saved, err := r.entryRepo.Contains(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist entry")
	}
	if saved {
		return pkgerrors.New(pkgerrors.CodeConflict, "already saved")
	}
	if err := r.entryRepo.AddItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist entry")
	}
	return nil
}
