package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AdejohOS/feather-mart-sub001/api/middleware"
	pkgAuth "github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
)

// visitorFromRequest rebuilds the visitor identity the middleware resolved.
// An authenticated request yields a user visitor even when a guest cookie is
// also present; the guest token only addresses state for anonymous requests.
func visitorFromRequest(r *http.Request) (pkgAuth.Visitor, error) {
	ctx := r.Context()

	if raw := middleware.UserIDFromContext(ctx); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return pkgAuth.Visitor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
		}
		return pkgAuth.User(userID), nil
	}

	token := middleware.GuestTokenFromContext(ctx)
	if token == "" {
		return pkgAuth.Visitor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing visitor identity")
	}
	return pkgAuth.Guest(token), nil
}

// mergeIdentityFromRequest needs both halves: the signed-in user and the
// guest token whose state is being absorbed.
func mergeIdentityFromRequest(r *http.Request) (uuid.UUID, string, error) {
	ctx := r.Context()

	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	token := middleware.GuestTokenFromContext(ctx)
	if token == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "missing guest token")
	}

	return userID, token, nil
}
