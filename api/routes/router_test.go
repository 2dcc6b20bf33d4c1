package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adminsvc "github.com/envatex/storefront-gateway/internal/admin"
	authsvc "github.com/envatex/storefront-gateway/internal/auth"
	"github.com/envatex/storefront-gateway/internal/quotation"
	"github.com/envatex/storefront-gateway/internal/session"
	"github.com/envatex/storefront-gateway/pkg/config"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

type stubCatalog struct{}

func (stubCatalog) ListProducts(ctx context.Context) ([]upstream.Product, error) {
	return []upstream.Product{{ID: 1, Name: "Canvas"}}, nil
}

type stubQuotations struct{}

func (stubQuotations) Submit(ctx context.Context, sess *session.Session, draft quotation.Draft) error {
	return nil
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, sess *session.Session, username, password string) (*authsvc.LoginResult, error) {
	sess.SetToken("opaque-token")
	return &authsvc.LoginResult{Role: "admin"}, nil
}

func (stubAuth) Logout(sess *session.Session) {
	sess.ClearToken()
}

type stubAdmin struct{}

func (stubAdmin) CreateProduct(ctx context.Context, sess *session.Session, input upstream.ProductInput) (*upstream.Product, error) {
	return &upstream.Product{ID: 2, Name: input.Name}, nil
}

func (stubAdmin) UpdateProduct(ctx context.Context, sess *session.Session, productID int64, input upstream.ProductInput) (*upstream.Product, error) {
	return &upstream.Product{ID: productID, Name: input.Name}, nil
}

func (stubAdmin) DeleteProduct(ctx context.Context, sess *session.Session, productID int64) error {
	return nil
}

func (stubAdmin) ListQuotations(ctx context.Context, sess *session.Session) ([]upstream.Quotation, error) {
	return []upstream.Quotation{{ID: 1, Status: "Pending"}}, nil
}

func (stubAdmin) RespondQuotation(ctx context.Context, sess *session.Session, quotationID int64, response string) (*upstream.Quotation, error) {
	return &upstream.Quotation{ID: quotationID, Status: "Responded", AdminResponse: response}, nil
}

func (stubAdmin) DeleteQuotation(ctx context.Context, sess *session.Session, quotationID int64) error {
	return nil
}

var (
	_ adminsvc.Service = stubAdmin{}
	_ authsvc.Service  = stubAuth{}
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Session: config.SessionConfig{
			Secret:     "unit-test-secret",
			Issuer:     "envatex-gateway",
			CookieName: "envatex_session",
			TTL:        time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	manager, err := session.NewManager(cfg.Session, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	return NewRouter(RouterParams{
		Config:         cfg,
		SessionManager: manager,
		CatalogService: stubCatalog{},
		QuotationSvc:   stubQuotations{},
		AuthService:    stubAuth{},
		AdminService:   stubAdmin{},
	})
}

func TestPublicRoutes(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/products", "", http.StatusOK},
		{http.MethodGet, "/api/v1/cart", "", http.StatusOK},
		{http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/cart", "", http.StatusOK},
	}
	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/quotations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without login, got %d", rec.Code)
	}
}

func TestLoginUnlocksAdminRoutes(t *testing.T) {
	router := testRouter(t)

	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login: %d (%s)", loginRec.Code, loginRec.Body.String())
	}

	cookies := loginRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	adminReq := httptest.NewRequest(http.MethodGet, "/api/admin/v1/quotations", nil)
	adminReq.AddCookie(cookies[0])
	adminRec := httptest.NewRecorder()
	router.ServeHTTP(adminRec, adminReq)
	if adminRec.Code != http.StatusOK {
		t.Fatalf("admin list after login: %d (%s)", adminRec.Code, adminRec.Body.String())
	}
	if !strings.Contains(adminRec.Body.String(), "Pending") {
		t.Fatalf("quotations missing: %s", adminRec.Body.String())
	}
}

func TestQuotationSubmissionFlow(t *testing.T) {
	router := testRouter(t)

	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1}`))
	addRec := httptest.NewRecorder()
	router.ServeHTTP(addRec, addReq)
	if addRec.Code != http.StatusOK {
		t.Fatalf("add to cart: %d", addRec.Code)
	}

	cookies := addRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	submitReq := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", strings.NewReader(`{"customer_name":"Amina","customer_email":"amina@example.com"}`))
	submitReq.AddCookie(cookies[0])
	submitRec := httptest.NewRecorder()
	router.ServeHTTP(submitRec, submitReq)
	if submitRec.Code != http.StatusCreated {
		t.Fatalf("submit: %d (%s)", submitRec.Code, submitRec.Body.String())
	}
}
