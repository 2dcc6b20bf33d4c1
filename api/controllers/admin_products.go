package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/envatex/storefront-gateway/api/middleware"
	"github.com/envatex/storefront-gateway/api/responses"
	adminsvc "github.com/envatex/storefront-gateway/internal/admin"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

const maxProductFormMemory = 32 << 20

// productInputFromForm reads the multipart product form the storefront api
// expects: text fields plus an optional image upload. An uploaded file wins
// over the image_url field.
func productInputFromForm(r *http.Request) (upstream.ProductInput, error) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		return upstream.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product form")
	}

	input := upstream.ProductInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		SKU:         strings.TrimSpace(r.FormValue("sku")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
	}
	if input.Name == "" {
		return upstream.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	if file, header, err := r.FormFile("image"); err == nil {
		input.Image = file
		input.ImageFilename = header.Filename
	}

	return input, nil
}

// AdminCreateProduct relays a new product to the storefront api.
func AdminCreateProduct(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		input, err := productInputFromForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), sess, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct relays a product update to the storefront api.
func AdminUpdateProduct(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		input, err := productInputFromForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), sess, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct relays a product deletion to the storefront api.
func AdminDeleteProduct(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		if err := svc.DeleteProduct(r.Context(), sess, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
