package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
)

// Product mirrors the storefront api's product record. The catalog is
// read-only from the gateway's perspective outside the admin surface.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ProductInput carries the admin-editable product fields. Image is an
// optional upload forwarded verbatim; ImageURL is honored when no file is
// provided.
type ProductInput struct {
	Name        string
	Description string
	SKU         string
	ImageURL    string

	Image         io.Reader
	ImageFilename string
}

type productEnvelope struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a catalog entry via the admin surface.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*Product, error) {
	return c.sendProductForm(ctx, http.MethodPost, "/api/products", token, input)
}

// UpdateProduct patches the identified product.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, input ProductInput) (*Product, error) {
	return c.sendProductForm(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token, input)
}

// DeleteProduct removes the identified product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil, nil)
}

// sendProductForm submits product fields as multipart form data, the only
// encoding the storefront api accepts for product writes.
func (c *Client) sendProductForm(ctx context.Context, method, path, token string, input ProductInput) (*Product, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":        input.Name,
		"description": input.Description,
		"sku":         input.SKU,
	}
	if input.Image == nil {
		fields["image_url"] = input.ImageURL
	}
	for key, value := range fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode product form")
		}
	}

	if input.Image != nil {
		filename := input.ImageFilename
		if filename == "" {
			filename = "image"
		}
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode product image")
		}
		if _, err := io.Copy(part, input.Image); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy product image")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize product form")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var envelope productEnvelope
	if err := c.send(req, token, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Product, nil
}
