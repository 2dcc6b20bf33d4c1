package upstream

import (
	"context"
	"net/http"
)

// LoginResult carries the opaque credential issued by the storefront api.
// The gateway stores the token as-is and never inspects it.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Login exchanges admin credentials for an opaque session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
