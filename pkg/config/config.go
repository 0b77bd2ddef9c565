package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig points at the upstream product catalog API.
type CatalogConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_CATALOG_BASE_URL" default:"https://dummyjson.com"`
	Timeout time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s"`
}

// CartConfig carries the pricing policy applied to every cart read.
type CartConfig struct {
	TaxRate     float64 `envconfig:"STOREFRONT_CART_TAX_RATE" default:"0.10"`
	MaxQuantity int     `envconfig:"STOREFRONT_CART_MAX_QUANTITY" default:"10"`
}

func (c CartConfig) validate() error {
	if c.TaxRate < 0 {
		return fmt.Errorf("cart tax rate must be non-negative, got %v", c.TaxRate)
	}
	if c.MaxQuantity < 1 {
		return fmt.Errorf("cart max quantity must be at least 1, got %d", c.MaxQuantity)
	}
	return nil
}

// SessionConfig controls the persisted-state retention window.
type SessionConfig struct {
	TTL time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"720h"`
}

type RateLimitConfig struct {
	SessionWindow time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
	SessionLimit  int           `envconfig:"STOREFRONT_RATE_LIMIT_SESSION_LIMIT" default:"30"`
}
