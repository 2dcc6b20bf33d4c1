package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/envatex/storefront-gateway/api/middleware"
	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/api/validators"
	"github.com/envatex/storefront-gateway/internal/cart"
	catalogsvc "github.com/envatex/storefront-gateway/internal/catalog"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

type cartResponse struct {
	Items         []cart.Entry `json:"items"`
	TotalQuantity int          `json:"total_quantity"`
}

func newCartResponse(entries []cart.Entry) cartResponse {
	total := 0
	for _, entry := range entries {
		total += entry.Quantity
	}
	if entries == nil {
		entries = []cart.Entry{}
	}
	return cartResponse{Items: entries, TotalQuantity: total}
}

// CartFetch returns the session cart in insertion order.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess.Cart().Snapshot()))
	}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

// CartAdd adds one unit of a catalog product to the session cart. The
// product is resolved server-side so the cart never holds client-invented
// entries.
func CartAdd(catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		for _, product := range products {
			if product.ID == payload.ProductID {
				sess.Cart().Add(product)
				responses.WriteSuccess(w, newCartResponse(sess.Cart().Snapshot()))
				return
			}
		}

		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
	}
}

// CartDecrement lowers the quantity of a cart line by one, removing the
// line at quantity one. Absent products are a no-op.
func CartDecrement(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		sess.Cart().Decrement(productID)
		responses.WriteSuccess(w, newCartResponse(sess.Cart().Snapshot()))
	}
}

// CartClear empties the session cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		sess.Cart().Clear()
		responses.WriteSuccess(w, newCartResponse(nil))
	}
}
