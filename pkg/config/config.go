package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Redis         RedisConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ENVATEX_APP_ENV" required:"true"`
	Port         string `envconfig:"ENVATEX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ENVATEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ENVATEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the storefront REST API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"ENVATEX_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ENVATEX_UPSTREAM_TIMEOUT" default:"30s"`
}

func (u *UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http or https, got %q", u.BaseURL)
	}
	u.BaseURL = strings.TrimRight(u.BaseURL, "/")
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ENVATEX_REDIS_URL"`
	Address      string        `envconfig:"ENVATEX_REDIS_ADDR"`
	Password     string        `envconfig:"ENVATEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"ENVATEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ENVATEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ENVATEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ENVATEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ENVATEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ENVATEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The
// gateway degrades gracefully without one: no catalog cache, no login rate
// limiting, no idempotency replay protection.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SessionConfig drives the signed session cookie and in-memory registry.
type SessionConfig struct {
	Secret     string        `envconfig:"ENVATEX_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"ENVATEX_SESSION_ISSUER" default:"envatex-gateway"`
	CookieName string        `envconfig:"ENVATEX_SESSION_COOKIE" default:"envatex_session"`
	TTL        time.Duration `envconfig:"ENVATEX_SESSION_TTL" default:"12h"`
	SweepEvery time.Duration `envconfig:"ENVATEX_SESSION_SWEEP_EVERY" default:"5m"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ENVATEX_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"ENVATEX_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ENVATEX_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"ENVATEX_CATALOG_CACHE_TTL" default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ENVATEX_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
