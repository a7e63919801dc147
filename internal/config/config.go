package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for chat-api.
type Config struct {
	// HTTP Server
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chat-api" json:"service_name"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development" json:"environment"`
	HTTPPort        int           `env:"PORT" envDefault:"5000" json:"http_port"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091" json:"metrics_port"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" json:"shutdown_timeout"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000" json:"frontend_url"`
	RateLimit       string        `env:"RATE_LIMIT" envDefault:"100-15M" json:"rate_limit"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:"," json:"trusted_proxies"`
	BodyLimitBytes  int64         `env:"BODY_LIMIT_BYTES" envDefault:"10485760" json:"body_limit_bytes"`
	EnableSwagger   bool          `env:"ENABLE_SWAGGER" envDefault:"true" json:"enable_swagger"`

	// PostgreSQL
	DatabaseURL    string        `env:"DATABASE_URL,notEmpty" json:"-"`
	DatabaseRead1  string        `env:"DB_POSTGRESQL_READ1_DSN" json:"-"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5" json:"db_max_idle_conns"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15" json:"db_max_open_conns"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m" json:"db_conn_max_lifetime"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true" json:"auto_migrate"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET" json:"-"`
	JWTExpiry  time.Duration `env:"JWT_EXPIRY" envDefault:"168h" json:"jwt_expiry"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12" json:"bcrypt_cost"`

	// Model provider
	MistralAPIKey  string        `env:"MISTRAL_API_KEY" json:"-"`
	MistralBaseURL string        `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai/v1" json:"mistral_base_url"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"120s" json:"http_timeout"`

	// Web search
	SearchProvider  string        `env:"SEARCH_PROVIDER" envDefault:"serper" json:"search_provider"`
	SerperAPIKey    string        `env:"SERPER_API_KEY" json:"-"`
	TavilyAPIKey    string        `env:"TAVILY_API_KEY" json:"-"`
	SearchTimeout   time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s" json:"search_timeout"`
	SearchCacheTTL  time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"10m" json:"search_cache_ttl"`
	SearchCacheSize int           `env:"SEARCH_CACHE_SIZE" envDefault:"256" json:"search_cache_size"`

	// Redis (optional): distributed conversation locks and shared rate limit store
	RedisURL string `env:"REDIS_URL" json:"-"`

	// Maintenance
	TempConversationTTL       time.Duration `env:"TEMP_CONVERSATION_TTL" envDefault:"24h" json:"temp_conversation_ttl"`
	TempConversationPurgeCron string        `env:"TEMP_CONVERSATION_PURGE_CRON" envDefault:"0 * * * *" json:"temp_conversation_purge_cron"`

	// Observability / Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info" json:"log_level"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console" json:"log_format"`
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false" json:"enable_tracing"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" json:"otlp_endpoint"`
}

const (
	SearchProviderSerper = "serper"
	SearchProviderTavily = "tavily"
)

// Parse reads environment variables into Config without service-level validation.
// Maintenance commands use it since they never issue tokens.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load parses environment variables into Config and performs minimal validation.
// A missing JWT_SECRET is fatal: tokens could not be issued nor verified.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg.SearchProvider = strings.ToLower(strings.TrimSpace(cfg.SearchProvider))
	switch cfg.SearchProvider {
	case SearchProviderSerper, SearchProviderTavily:
	default:
		return nil, fmt.Errorf("unsupported SEARCH_PROVIDER %q", cfg.SearchProvider)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the Prometheus listen address.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// SearchAPIKey returns the key of the configured search provider.
func (c *Config) SearchAPIKey() string {
	if c.SearchProvider == SearchProviderTavily {
		return c.TavilyAPIKey
	}
	return c.SerperAPIKey
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
