package controllers

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/middleware"
	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/api/validators"
	adminsvc "github.com/envatex/storefront-gateway/internal/admin"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

// AdminListQuotations returns every quotation the storefront api holds.
func AdminListQuotations(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		quotations, err := svc.ListQuotations(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotations)
	}
}

type respondQuotationRequest struct {
	AdminResponse string `json:"admin_response" validate:"required"`
}

// AdminRespondQuotation records an admin response, which also flips the
// quotation status upstream.
func AdminRespondQuotation(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		quotationID, err := parseIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload respondQuotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		quotation, err := svc.RespondQuotation(r.Context(), sess, quotationID, payload.AdminResponse)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotation)
	}
}

// AdminDeleteQuotation relays a quotation deletion to the storefront api.
func AdminDeleteQuotation(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		quotationID, err := parseIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if err := svc.DeleteQuotation(r.Context(), sess, quotationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
