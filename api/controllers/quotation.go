package controllers

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/middleware"
	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/api/validators"
	quotationsvc "github.com/envatex/storefront-gateway/internal/quotation"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

type submitQuotationRequest struct {
	CustomerName     string `json:"customer_name" validate:"required"`
	CustomerEmail    string `json:"customer_email" validate:"required,email"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerComments string `json:"customer_comments"`
}

// QuotationSubmit sends the session cart upstream as a quotation request.
func QuotationSubmit(svc quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload submitQuotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := quotationsvc.Draft{
			CustomerName:     payload.CustomerName,
			CustomerEmail:    payload.CustomerEmail,
			CustomerPhone:    payload.CustomerPhone,
			CustomerComments: payload.CustomerComments,
		}

		if err := svc.Submit(r.Context(), sess, draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "submitted"})
	}
}
