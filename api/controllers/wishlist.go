package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AdejohOS/feather-mart-sub001/api/responses"
	"github.com/AdejohOS/feather-mart-sub001/api/validators"
	wishlistsvc "github.com/AdejohOS/feather-mart-sub001/internal/wishlist"
	pkgAuth "github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
)

type addWishlistItemPayload struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type wishlistMergeResponse struct {
	Wishlist wishlistsvc.Wishlist      `json:"wishlist"`
	Merged   []uuid.UUID               `json:"merged"`
	Skipped  []wishlistsvc.SkippedItem `json:"skipped"`
}

// WishlistFetch returns the visitor's wishlist hydrated with live product
// data.
func WishlistFetch(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wishlist, err := svc.Get(ctx, visitor)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}

// WishlistAddItem saves a product. Saving twice is a no-op.
func WishlistAddItem(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addWishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		wishlist, err := svc.Add(ctx, visitor, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wishlist)
	}
}

// WishlistRemoveItem unsaves a product.
func WishlistRemoveItem(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "productID"))
		productID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		wishlist, err := svc.Remove(ctx, visitor, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}

// WishlistMerge absorbs the guest wishlist into the signed-in user's.
func WishlistMerge(svc wishlistsvc.Service, rec *wishlistsvc.Reconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || rec == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		userID, guestToken, err := mergeIdentityFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := rec.Run(ctx, userID, guestToken)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wishlist, err := svc.Get(ctx, pkgAuth.User(userID))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistMergeResponse{
			Wishlist: wishlist,
			Merged:   report.Merged,
			Skipped:  report.Skipped,
		})
	}
}
