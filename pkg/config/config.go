package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "techstore"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Proxy    ProxyConfig
	Storage  StorageConfig
	Redis    RedisConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TECHSTORE_APP_ENV" default:"dev"`
	Port         string `envconfig:"TECHSTORE_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"TECHSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the third-party catalog API the proxy fronts.
type UpstreamConfig struct {
	BaseURL       string        `envconfig:"TECHSTORE_UPSTREAM_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout       time.Duration `envconfig:"TECHSTORE_UPSTREAM_TIMEOUT" default:"10s"`
	RetryAttempts int           `envconfig:"TECHSTORE_UPSTREAM_RETRY_ATTEMPTS" default:"3"`
	RetryBase     time.Duration `envconfig:"TECHSTORE_UPSTREAM_RETRY_BASE" default:"200ms"`
}

// ProxyConfig points the terminal storefront at its proxy API.
type ProxyConfig struct {
	BaseURL string        `envconfig:"TECHSTORE_PROXY_BASE_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"TECHSTORE_PROXY_TIMEOUT" default:"10s"`
}

// Storage drivers for the device-local key-value store backing the cart.
const (
	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
	StorageDriverRedis  = "redis"
)

type StorageConfig struct {
	Driver     string `envconfig:"TECHSTORE_STORAGE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"TECHSTORE_STORAGE_SQLITE_PATH" default:"techstore.db"`
	CartKey    string `envconfig:"TECHSTORE_STORAGE_CART_KEY" default:"techstore_cart"`
	ThemeKey   string `envconfig:"TECHSTORE_STORAGE_THEME_KEY" default:"techstore_light_mode"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverMemory, StorageDriverSQLite, StorageDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", s.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHSTORE_REDIS_URL"`
	Address      string        `envconfig:"TECHSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TECHSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHSTORE_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TECHSTORE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8000"`
}
