package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/envatex/storefront-gateway/api/routes"
	adminsvc "github.com/envatex/storefront-gateway/internal/admin"
	authsvc "github.com/envatex/storefront-gateway/internal/auth"
	catalogsvc "github.com/envatex/storefront-gateway/internal/catalog"
	quotationsvc "github.com/envatex/storefront-gateway/internal/quotation"
	"github.com/envatex/storefront-gateway/internal/session"
	"github.com/envatex/storefront-gateway/pkg/config"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/metrics"
	"github.com/envatex/storefront-gateway/pkg/redis"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	upstreamClient, err := upstream.NewClient(cfg.Upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, running without cache, rate limits, and idempotency")
	}

	sessionManager, err := session.NewManager(cfg.Session, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	quotationMetrics := metrics.NewQuotationMetrics(registry)

	catalogParams := catalogsvc.ServiceParams{
		API:      upstreamClient,
		CacheTTL: cfg.Catalog.CacheTTL,
		Logger:   logg,
	}
	if redisClient != nil {
		catalogParams.Cache = redisClient
	}
	catalogService, err := catalogsvc.NewService(catalogParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	quotationService, err := quotationsvc.NewService(upstreamClient, quotationMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	adminService, err := adminsvc.NewService(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	sessionManager.StartJanitor(janitorCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": upstreamClient.BaseURL(),
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			SessionManager: sessionManager,
			CatalogService: catalogService,
			QuotationSvc:   quotationService,
			AuthService:    authService,
			AdminService:   adminService,
			UpstreamPinger: upstreamClient,
			RedisClient:    redisClient,
			HTTPMetrics:    httpMetrics,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		if redisClient != nil {
			closeErr = multierr.Append(closeErr, redisClient.Close())
		}
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
