package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AdejohOS/feather-mart-sub001/api/responses"
	"github.com/AdejohOS/feather-mart-sub001/api/validators"
	cartsvc "github.com/AdejohOS/feather-mart-sub001/internal/cart"
	pkgAuth "github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
)

type addCartItemPayload struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemPayload struct {
	// Zero and negative quantities remove the line, so no min bound here.
	Quantity *int `json:"quantity" validate:"required"`
}

type cartMergeResponse struct {
	Cart    cartsvc.Cart          `json:"cart"`
	Merged  []uuid.UUID           `json:"merged"`
	Skipped []cartsvc.SkippedItem `json:"skipped"`
}

// CartFetch returns the visitor's full cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cart, err := svc.Get(ctx, visitor)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartAddItem adds a product to the cart, merging quantity into any existing
// line for the same product.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		cart, err := svc.Add(ctx, visitor, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cart)
	}
}

// CartUpdateItem sets a line's quantity; zero or less removes it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cart, err := svc.UpdateQuantity(ctx, visitor, itemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		cart, err := svc.Remove(ctx, visitor, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartMerge absorbs the guest cart into the signed-in user's cart and
// returns the merged result alongside the per-item report.
func CartMerge(svc cartsvc.Service, rec *cartsvc.Reconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || rec == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		cart, err := svc.Get(ctx, pkgAuth.User(userID))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartMergeResponse{
			Cart:    cart,
			Merged:  report.Merged,
			Skipped: report.Skipped,
		})
	}
}
