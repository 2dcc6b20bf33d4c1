package auth

import (
	"context"
	"testing"
	"time"

	"github.com/envatex/storefront-gateway/internal/session"
	"github.com/envatex/storefront-gateway/pkg/config"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

type stubLoginClient struct {
	result   *upstream.LoginResult
	err      error
	username string
	password string
}

func (s *stubLoginClient) Login(ctx context.Context, username, password string) (*upstream.LoginResult, error) {
	s.username = username
	s.password = password
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	m, err := session.NewManager(config.SessionConfig{
		Secret:     "unit-test-secret",
		Issuer:     "envatex-gateway",
		CookieName: "envatex_session",
		TTL:        time.Hour,
	}, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	sess, _, err := m.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func TestNewServiceRequiresAPI(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error without api client")
	}
}

func TestLoginStoresTokenInSession(t *testing.T) {
	api := &stubLoginClient{result: &upstream.LoginResult{AccessToken: "opaque-token", Role: "admin"}}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	result, err := svc.Login(context.Background(), sess, "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Role != "admin" {
		t.Fatalf("expected role to be relayed, got %q", result.Role)
	}
	if api.username != "admin" || api.password != "secret" {
		t.Fatal("credentials must be forwarded verbatim")
	}
	if got := sess.Token(); got != "opaque-token" {
		t.Fatalf("token not bound to session, got %q", got)
	}
}

func TestLoginFailureLeavesSessionUnauthenticated(t *testing.T) {
	api := &stubLoginClient{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	_, err = svc.Login(context.Background(), sess, "admin", "wrong")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("failed login must not authenticate the session")
	}
}

func TestLoginRejectsEmptyUpstreamToken(t *testing.T) {
	api := &stubLoginClient{result: &upstream.LoginResult{Role: "admin"}}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	_, err = svc.Login(context.Background(), sess, "admin", "secret")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error for empty token, got %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("empty token must not authenticate the session")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, err := NewService(&stubLoginClient{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	sess.SetToken("opaque-token")

	svc.Logout(sess)
	if sess.Authenticated() {
		t.Fatal("logout must discard the token")
	}
	svc.Logout(sess)
	if sess.Authenticated() {
		t.Fatal("second logout must be a no-op")
	}
}
