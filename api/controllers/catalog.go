package controllers

import (
	"net/http"

	"github.com/envatex/storefront-gateway/api/responses"
	catalogsvc "github.com/envatex/storefront-gateway/internal/catalog"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

// Products serves the public product listing.
func Products(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
