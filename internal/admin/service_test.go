package admin

import (
	"context"
	"testing"
	"time"

	"github.com/envatex/storefront-gateway/internal/session"
	"github.com/envatex/storefront-gateway/pkg/config"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

type stubAPI struct {
	err        error
	lastToken  string
	quotations []upstream.Quotation
	product    *upstream.Product
}

func (s *stubAPI) CreateProduct(ctx context.Context, token string, input upstream.ProductInput) (*upstream.Product, error) {
	s.lastToken = token
	return s.product, s.err
}

func (s *stubAPI) UpdateProduct(ctx context.Context, token string, productID int64, input upstream.ProductInput) (*upstream.Product, error) {
	s.lastToken = token
	return s.product, s.err
}

func (s *stubAPI) DeleteProduct(ctx context.Context, token string, productID int64) error {
	s.lastToken = token
	return s.err
}

func (s *stubAPI) ListQuotations(ctx context.Context, token string) ([]upstream.Quotation, error) {
	s.lastToken = token
	return s.quotations, s.err
}

func (s *stubAPI) RespondQuotation(ctx context.Context, token string, quotationID int64, response string) (*upstream.Quotation, error) {
	s.lastToken = token
	return &upstream.Quotation{ID: quotationID, Status: "Responded", AdminResponse: response}, s.err
}

func (s *stubAPI) DeleteQuotation(ctx context.Context, token string, quotationID int64) error {
	s.lastToken = token
	return s.err
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

func TestOperationsRequireToken(t *testing.T) {
	api := &stubAPI{}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sess := newTestSession(t)

	_, err = svc.ListQuotations(context.Background(), sess)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if api.lastToken != "" {
		t.Fatal("unauthenticated call must never reach the storefront api")
	}
}

func TestTokenIsForwarded(t *testing.T) {
	api := &stubAPI{quotations: []upstream.Quotation{{ID: 1, Status: "Pending"}}}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	sess.SetToken("opaque-token")

	quotations, err := svc.ListQuotations(context.Background(), sess)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastToken != "opaque-token" {
		t.Fatalf("token not forwarded, got %q", api.lastToken)
	}
	if len(quotations) != 1 || quotations[0].Status != "Pending" {
		t.Fatalf("unexpected quotations %+v", quotations)
	}
}

func TestUpstreamRejectionDiscardsToken(t *testing.T) {
	api := &stubAPI{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	sess.SetToken("stale-token")

	_, err = svc.ListQuotations(context.Background(), sess)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("rejected token must be discarded from the session")
	}
}

func TestOtherFailuresKeepToken(t *testing.T) {
	api := &stubAPI{err: pkgerrors.New(pkgerrors.CodeUpstream, "storefront api unavailable")}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	sess.SetToken("opaque-token")

	if err := svc.DeleteProduct(context.Background(), sess, 4); err == nil {
		t.Fatal("expected upstream error")
	}
	if !sess.Authenticated() {
		t.Fatal("a transport failure must not log the admin out")
	}
}

func TestRespondQuotationRelaysAdminResponse(t *testing.T) {
	api := &stubAPI{}
	svc, err := NewService(api, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess := newTestSession(t)
	sess.SetToken("opaque-token")

	quotation, err := svc.RespondQuotation(context.Background(), sess, 12, "We can do 500 units")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if quotation.Status != "Responded" || quotation.AdminResponse != "We can do 500 units" {
		t.Fatalf("unexpected quotation %+v", quotation)
	}
}
