// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSessionSecretLength is the minimum length of EDUSYNC_SESSION_SECRET.
// The secret doubles as the CSRF authentication key.
const MinSessionSecretLength = 32

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"edusync"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	MaxConns        int32         `env:"MAX_CONNS" envDefault:"20"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"5m"`
	ConnectAttempts int           `env:"CONNECT_ATTEMPTS" envDefault:"5"`
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Config is the full service configuration.
type Config struct {
	Env      string `env:"EDUSYNC_ENV" envDefault:"development"`
	LogLevel string `env:"EDUSYNC_LOG_LEVEL" envDefault:"info"`
	Host     string `env:"EDUSYNC_HOST" envDefault:""`
	Port     int    `env:"PORT" envDefault:"8080"`

	Database DatabaseConfig `envPrefix:"DB_"`

	SessionSecret   string        `env:"EDUSYNC_SESSION_SECRET,required"`
	SessionLifetime time.Duration `env:"EDUSYNC_SESSION_LIFETIME" envDefault:"24h"`

	// Optional; snapshots stay in process memory when unset.
	RedisURL    string        `env:"EDUSYNC_REDIS_URL"`
	CachePrefix string        `env:"EDUSYNC_CACHE_PREFIX" envDefault:"edusync:"`
	// Zero keeps a viewer's last good list until it is replaced or they sign out.
	SnapshotTTL time.Duration `env:"EDUSYNC_SNAPSHOT_TTL" envDefault:"0s"`

	Timezone       string   `env:"EDUSYNC_TIMEZONE" envDefault:"UTC"`
	AllowedOrigins []string `env:"EDUSYNC_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	SignInRate  float64 `env:"EDUSYNC_SIGNIN_RATE" envDefault:"0.5"`
	SignInBurst int     `env:"EDUSYNC_SIGNIN_BURST" envDefault:"5"`

	// Honor X-Forwarded-For and X-Real-IP. Enable only behind a reverse proxy.
	TrustProxy bool `env:"EDUSYNC_TRUST_PROXY" envDefault:"false"`

	location *time.Location
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UseRedis reports whether a Redis URL was configured.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}

// Location returns the timezone used to decide event statuses.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Load reads an optional .env file, then parses and validates the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("EDUSYNC_SESSION_SECRET must be at least %d bytes long, got %d",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be positive, got %d", c.Database.ConnectAttempts)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("EDUSYNC_TIMEZONE: %w", err)
	}
	c.location = loc
	return nil
}
