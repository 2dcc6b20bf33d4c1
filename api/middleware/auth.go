package middleware

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/responses"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

// RequireAuthenticated rejects requests whose session holds no upstream
// token. The token itself is never inspected here; the storefront api is
// the authority and a rejected call discards it downstream.
func RequireAuthenticated(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil || !sess.Authenticated() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
