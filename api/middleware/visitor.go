package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AdejohOS/feather-mart-sub001/api/responses"
	pkgAuth "github.com/AdejohOS/feather-mart-sub001/pkg/auth"
	"github.com/AdejohOS/feather-mart-sub001/pkg/config"
	pkgerrors "github.com/AdejohOS/feather-mart-sub001/pkg/errors"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
)

// Visitor resolves who the request belongs to and seeds the context with it.
// A bearer token, when present, must be valid; a malformed one is rejected
// rather than silently downgraded to guest. Every request also carries a
// guest token cookie, minted here on first contact, so an anonymous visitor
// keeps the same state slot across requests and a signed-in user still holds
// the token the merge endpoint needs.
func Visitor(cfg *config.Config, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := strings.TrimSpace(r.Header.Get("Authorization")); raw != "" {
				token := raw
				if strings.HasPrefix(strings.ToLower(token), "bearer ") {
					token = strings.TrimSpace(token[7:])
				}
				if token == "" {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
					return
				}

				claims, err := pkgAuth.ParseAccessToken(cfg.JWT, token)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
					return
				}

				ctx = WithUserID(ctx, claims.UserID.String())
				if logg != nil {
					ctx = logg.WithUserID(ctx, claims.UserID.String())
				}
			}

			guestToken := guestTokenFromCookie(r, cfg.Guest.CookieName)
			if guestToken == "" {
				guestToken = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Guest.CookieName,
					Value:    guestToken,
					Path:     "/",
					MaxAge:   int(cfg.Guest.StateTTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Guest.SecureOnly,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = WithGuestToken(ctx, guestToken)
			if logg != nil {
				ctx = logg.WithGuestToken(ctx, guestToken)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser gates routes that only make sense for a signed-in visitor.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func guestTokenFromCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	token := strings.TrimSpace(cookie.Value)
	if _, err := uuid.Parse(token); err != nil {
		// An unparsable cookie gets replaced instead of addressing a slot
		// the client could forge arbitrarily.
		return ""
	}
	return token
}
