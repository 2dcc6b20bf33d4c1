package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/envatex/storefront-gateway/pkg/logger"
	pkgredis "github.com/envatex/storefront-gateway/pkg/redis"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

const cacheKeyID = "products"

type productLister interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
}

type productCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(id string) string
}

// Service exposes the public product listing.
type Service interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
}

// ServiceParams wires the catalog service. Cache is optional: without one
// every listing goes straight to the storefront api.
type ServiceParams struct {
	API      productLister
	Cache    productCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

type service struct {
	api      productLister
	cache    productCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the catalog service.
func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, fmt.Errorf("catalog api client required")
	}
	return &service{
		api:      params.API,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		logg:     params.Logger,
	}, nil
}

// ListProducts serves the catalog from cache when possible. The upstream
// list is immutable from the storefront's perspective, so a short TTL is
// safe; cache failures degrade to a direct upstream call.
func (s *service) ListProducts(ctx context.Context) ([]upstream.Product, error) {
	if s.cache != nil {
		if products, ok := s.fromCache(ctx); ok {
			return products, nil
		}
	}

	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.store(ctx, products)
	}
	return products, nil
}

func (s *service) fromCache(ctx context.Context) ([]upstream.Product, bool) {
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey(cacheKeyID))
	if err != nil {
		if !errors.Is(err, pkgredis.Nil) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache.read_failed")
		}
		return nil, false
	}

	var products []upstream.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache.decode_failed")
		}
		return nil, false
	}
	return products, true
}

func (s *service) store(ctx context.Context, products []upstream.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CatalogKey(cacheKeyID), string(payload), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache.write_failed")
	}
}
