package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/envatex/storefront-gateway/pkg/config"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

var errLoggerRequired = errors.New("upstream logger is required")

// Client talks to the storefront REST API with centralized error mapping.
// It performs no retries: a failed call is terminal for that attempt.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient validates the configuration and builds the API wrapper.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base url is required")
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logg,
	}, nil
}

// BaseURL reports the configured API root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Ping checks reachability of the API root for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping storefront api: %w", err)
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("storefront api returned %d", resp.StatusCode)
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out when it is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

func (c *Client) send(req *http.Request, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "call storefront api")
	}
	defer drainAndClose(resp.Body)

	if err := mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode storefront response")
	}
	return nil
}

// mapStatus converts non-2xx responses into the gateway error taxonomy:
// 401/403 become authorization failures, 400 validation, 404 not found, and
// everything else an upstream dependency error.
func mapStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	msg := upstreamMessage(resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, msg)
	case http.StatusBadRequest:
		return pkgerrors.New(pkgerrors.CodeValidation, msg)
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	default:
		return pkgerrors.New(pkgerrors.CodeUpstream, msg).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
}

func upstreamMessage(resp *http.Response) string {
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("storefront api returned %d", resp.StatusCode)
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
