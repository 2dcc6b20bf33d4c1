package redis

import (
	"testing"
	"time"

	"github.com/envatex/storefront-gateway/pkg/config"
)

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	cfg := config.RedisConfig{
		Address:      "localhost:6379",
		Password:     "pw",
		DB:           2,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 2 || opts.PoolSize != 5 {
		t.Fatalf("options not mapped: %+v", opts)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@localhost:6380/3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 3 {
		t.Fatalf("url not parsed: %+v", opts)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("quotations", "abc"); got != "envatex:idempotency:quotations:abc" {
		t.Fatalf("unexpected idempotency key %q", got)
	}
	if got := c.RateLimitKey("ip", "login", "1.2.3.4"); got != "envatex:rate_limit:ip:login:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := c.CatalogKey("products"); got != "envatex:catalog:products" {
		t.Fatalf("unexpected catalog key %q", got)
	}
}
