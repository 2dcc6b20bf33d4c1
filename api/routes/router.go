package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/envatex/storefront-gateway/api/controllers"
	"github.com/envatex/storefront-gateway/api/middleware"
	adminsvc "github.com/envatex/storefront-gateway/internal/admin"
	authsvc "github.com/envatex/storefront-gateway/internal/auth"
	catalogsvc "github.com/envatex/storefront-gateway/internal/catalog"
	quotationsvc "github.com/envatex/storefront-gateway/internal/quotation"
	"github.com/envatex/storefront-gateway/internal/session"
	"github.com/envatex/storefront-gateway/pkg/config"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/metrics"
	"github.com/envatex/storefront-gateway/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs. Redis is
// optional; without it the rate-limit and idempotency middlewares become
// pass-throughs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionManager *session.Manager
	CatalogService catalogsvc.Service
	QuotationSvc   quotationsvc.Service
	AuthService    authsvc.Service
	AdminService   adminsvc.Service
	UpstreamPinger controllers.Pinger
	RedisClient    *redis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(params.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", readyHandler(params))
	})

	metricsHandler := params.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	sessionMW := middleware.Session(params.SessionManager, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(sessionMW)

		r.Get("/products", controllers.Products(params.CatalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(logg))
			r.Post("/items", controllers.CartAdd(params.CatalogService, logg))
			r.Post("/items/{productId}/decrement", controllers.CartDecrement(logg))
			r.Delete("/", controllers.CartClear(logg))
		})

		r.Group(func(r chi.Router) {
			if params.RedisClient != nil {
				r.Use(middleware.Idempotency(params.RedisClient, logg))
			}
			r.Post("/quotations", controllers.QuotationSubmit(params.QuotationSvc, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			if params.RedisClient != nil {
				r.With(middleware.AuthRateLimit(loginPolicy, params.RedisClient, logg)).
					Post("/login", controllers.AuthLogin(params.AuthService, logg))
			} else {
				r.Post("/login", controllers.AuthLogin(params.AuthService, logg))
			}
			r.Post("/logout", controllers.AuthLogout(params.AuthService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(sessionMW)
		r.Use(middleware.RequireAuthenticated(logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(params.AdminService, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(params.AdminService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(params.AdminService, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.AdminListQuotations(params.AdminService, logg))
			r.Patch("/{quotationId}", controllers.AdminRespondQuotation(params.AdminService, logg))
			r.Delete("/{quotationId}", controllers.AdminDeleteQuotation(params.AdminService, logg))
		})
	})

	return r
}

func readyHandler(params RouterParams) http.HandlerFunc {
	var redisP controllers.Pinger
	if params.RedisClient != nil {
		redisP = params.RedisClient
	}
	return controllers.HealthReady(params.Config, params.Logger, params.UpstreamPinger, redisP)
}
