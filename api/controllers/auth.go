package controllers

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/middleware"
	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/api/validators"
	authsvc "github.com/envatex/storefront-gateway/internal/auth"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// AuthLogin forwards credentials to the storefront api and binds the
// returned token to the session. The token is never written to the
// response.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), sess, payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{Role: result.Role, Authenticated: true})
	}
}

// AuthLogout discards the session token. Always succeeds.
func AuthLogout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		svc.Logout(sess)
		responses.WriteSuccess(w, loginResponse{Authenticated: false})
	}
}
