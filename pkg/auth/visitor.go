package auth

import "github.com/google/uuid"

// Visitor identifies who a cart or wishlist belongs to. Exactly one of the
// two identities is meaningful: an authenticated user id, or the anonymous
// guest token addressing the browser-scoped state slot. Services receive the
// visitor explicitly; nothing reads it from ambient state.
type Visitor struct {
	UserID     uuid.UUID
	GuestToken string
}

// Guest builds a visitor for an anonymous browser session.
func Guest(token string) Visitor {
	return Visitor{GuestToken: token}
}

// User builds a visitor for an authenticated session.
func User(id uuid.UUID) Visitor {
	return Visitor{UserID: id}
}

// IsAuthenticated reports whether the visitor carries a signed-in identity.
func (v Visitor) IsAuthenticated() bool {
	return v.UserID != uuid.Nil
}
