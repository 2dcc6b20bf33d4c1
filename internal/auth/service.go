package auth

import (
	"context"
	"fmt"

	"github.com/envatex/storefront-gateway/internal/session"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

type loginClient interface {
	Login(ctx context.Context, username, password string) (*upstream.LoginResult, error)
}

// LoginResult reports the outcome of an upstream login. The access token
// itself stays inside the session and never reaches the browser.
type LoginResult struct {
	Role string `json:"role"`
}

// Service handles login and logout against the storefront api.
type Service interface {
	Login(ctx context.Context, sess *session.Session, username, password string) (*LoginResult, error)
	Logout(sess *session.Session)
}

type service struct {
	api  loginClient
	logg *logger.Logger
}

// NewService builds the auth service.
func NewService(api loginClient, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("auth api client required")
	}
	return &service{api: api, logg: logg}, nil
}

// Login exchanges credentials for an opaque upstream token and binds it to
// the session. Credentials are forwarded verbatim; the gateway never
// inspects or stores them.
func (s *service) Login(ctx context.Context, sess *session.Session, username, password string) (*LoginResult, error) {
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}

	result, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "storefront api unavailable")
	}

	sess.SetToken(result.AccessToken)
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "role", result.Role), "auth.login")
	}
	return &LoginResult{Role: result.Role}, nil
}

// Logout discards the session token. Idempotent.
func (s *service) Logout(sess *session.Session) {
	if sess == nil {
		return
	}
	sess.ClearToken()
}
