package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	pkgconfig "github.com/raselahmedweb/innovensky/pkg/config"
	"github.com/raselahmedweb/innovensky/pkg/database"
)

const minSecretLength = 32

// Config holds all configuration for the site.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"innovensky"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"innovensky"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"innovensky"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"30"`
	SlowQueryThresholdMS  int   `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`

	// Session. The secret has no default: an empty value is rejected.
	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionLifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`
	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	SessionCookieSecure *bool         `env:"SESSION_COOKIE_SECURE"`

	// Login rate limiting. Without REDIS_HOST an in-process limiter is used.
	RedisHost       string        `env:"REDIS_HOST"`
	RedisPort       int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"15m"`

	// Contact notifications. Both are disabled when empty.
	KafkaBrokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaContactTopic string   `env:"KAFKA_CONTACT_TOPIC" envDefault:"innovensky.contact.received"`
	ContactWebhookURL string   `env:"CONTACT_WEBHOOK_URL"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed, as
	// IPs or CIDRs. Empty means the site is reached directly.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Public pages
	PageCacheSeconds int `env:"PAGE_CACHE_SECONDS" envDefault:"60"`
}

// ErrSessionSecretMissing is returned by Load when SESSION_SECRET is unset.
var ErrSessionSecretMissing = errors.New("SESSION_SECRET must be set")

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionSecret == "" {
		return ErrSessionSecretMissing
	}
	if !c.IsDevelopment() && len(c.SessionSecret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters long in %q mode, got %d",
			minSecretLength, c.Environment, len(c.SessionSecret))
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}
	if c.LoginRateLimit < 1 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be at least 1, got %d", c.LoginRateLimit)
	}
	if c.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be positive, got %s", c.LoginRateWindow)
	}
	for _, p := range c.TrustedProxies {
		p = strings.TrimSpace(p)
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
			}
		}
	}
	return nil
}

// IsDevelopment reports whether the site runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CookieSecure reports whether the session cookie gets the Secure flag.
// It defaults to true everywhere except development.
func (c *Config) CookieSecure() bool {
	if c.SessionCookieSecure != nil {
		return *c.SessionCookieSecure
	}
	return !c.IsDevelopment()
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the Redis configuration. Its Enabled method is false when
// REDIS_HOST is empty.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// SlowQueryThreshold converts SLOW_QUERY_THRESHOLD_MS to a duration.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMS) * time.Millisecond
}
