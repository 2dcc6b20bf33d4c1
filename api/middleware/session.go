package middleware

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/internal/session"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

// Session resolves the visitor session from the signed cookie and attaches
// it to the request context. A missing or stale cookie yields a fresh
// session and a replacement Set-Cookie on the response.
func Session(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookieValue := ""
			if cookie, err := r.Cookie(manager.CookieName()); err == nil {
				cookieValue = cookie.Value
			}

			sess, replacement, err := manager.Resolve(cookieValue)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve session"))
				return
			}

			if replacement != "" {
				http.SetCookie(w, &http.Cookie{
					Name:     manager.CookieName(),
					Value:    replacement,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = WithSession(ctx, sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
