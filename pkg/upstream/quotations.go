package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// QuotationItemPayload is a single line of a submitted quotation request.
type QuotationItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// QuotationPayload is the wire format for a customer quotation submission.
type QuotationPayload struct {
	CustomerName     string                 `json:"customer_name"`
	CustomerEmail    string                 `json:"customer_email"`
	CustomerPhone    string                 `json:"customer_phone,omitempty"`
	CustomerComments string                 `json:"customer_comments,omitempty"`
	Items            []QuotationItemPayload `json:"items"`
}

// QuotationItem is a line of a stored quotation as returned by the admin
// listing.
type QuotationItem struct {
	ID        int64    `json:"id"`
	Quantity  int      `json:"quantity"`
	ProductID int64    `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

// Quotation is the stored record visible to administrators. CreatedAt is
// relayed verbatim; the storefront api emits a naive ISO timestamp.
type Quotation struct {
	ID               int64           `json:"id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerPhone    string          `json:"customer_phone,omitempty"`
	CustomerComments string          `json:"customer_comments,omitempty"`
	Status           string          `json:"status"`
	CreatedAt        string          `json:"created_at,omitempty"`
	AdminResponse    string          `json:"admin_response,omitempty"`
	Items            []QuotationItem `json:"items"`
}

type quotationEnvelope struct {
	Message   string    `json:"message"`
	Quotation Quotation `json:"quotation"`
}

// SubmitQuotation posts a customer quotation request. Success means the
// storefront api acknowledged the draft; the caller decides what to do with
// local state.
func (c *Client) SubmitQuotation(ctx context.Context, payload QuotationPayload) error {
	return c.doJSON(ctx, http.MethodPost, "/api/quotations", "", payload, nil)
}

// ListQuotations returns all stored quotations, newest first.
func (c *Client) ListQuotations(ctx context.Context, token string) ([]Quotation, error) {
	var quotations []Quotation
	if err := c.doJSON(ctx, http.MethodGet, "/api/quotations", token, nil, &quotations); err != nil {
		return nil, err
	}
	return quotations, nil
}

// RespondQuotation records the admin response, which also flips the record
// to its responded status upstream.
func (c *Client) RespondQuotation(ctx context.Context, token string, id int64, response string) (*Quotation, error) {
	body := map[string]string{"admin_response": response}
	var envelope quotationEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/quotations/%d", id), token, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Quotation, nil
}

// DeleteQuotation removes the identified quotation and its items.
func (c *Client) DeleteQuotation(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/quotations/%d", id), token, nil, nil)
}
