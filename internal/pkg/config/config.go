package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend     BackendConfig
	Maintenance MaintenanceConfig
	Tokens      TokenConfig
	Redis       RedisConfig
	DevAPI      DevAPIConfig
	Mongo       MongoConfig
}

// BackendConfig points at the REST backend the dashboard fronts.
type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
}

type MaintenanceConfig struct {
	PollInterval time.Duration `env:"MAINTENANCE_POLL_INTERVAL, default=30s"`
}

// TokenConfig selects where browser credentials are kept.
type TokenConfig struct {
	Store        string        `env:"TOKEN_STORE, default=memory"`
	File         string        `env:"TOKEN_FILE"`
	TTL          time.Duration `env:"TOKEN_TTL, default=168h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// DevAPIConfig configures the local development backend.
type DevAPIConfig struct {
	Port          string        `env:"DEVAPI_PORT, default=8000"`
	JWTSecret     string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL      time.Duration `env:"JWT_TTL, default=24h"`
	DashboardURL  string        `env:"DASHBOARD_URL, default=http://localhost:8080"`
	AdminEmail    string        `env:"DEVAPI_ADMIN_EMAIL"`
	AdminPassword string        `env:"DEVAPI_ADMIN_PASSWORD"`
	LoginRPS      float64       `env:"DEVAPI_LOGIN_RPS, default=5"`
	LoginBurst    int           `env:"DEVAPI_LOGIN_BURST, default=10"`
}

// MongoConfig is optional; without a URI the devapi keeps accounts in memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=botaxxx"`
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Tokens.Store {
	case TokenStoreMemory, TokenStoreFile, TokenStoreRedis:
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q", c.Tokens.Store)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is required")
	}
	if c.Maintenance.PollInterval <= 0 {
		return fmt.Errorf("config: MAINTENANCE_POLL_INTERVAL must be positive")
	}
	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
