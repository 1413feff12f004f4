// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates them
// so the service fails fast on bad or missing configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values and cross-field rules.
//   - Provide defaults for every optional block.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix PORTFOLIO_. A double underscore
	separates nesting levels, single underscores stay part of the key:

	  PORTFOLIO_SERVER__PORT          -> server.port
	  PORTFOLIO_EMAIL__RESEND_API_KEY -> email.resend_api_key
*/

// EnvPrefix is the prefix every recognised environment variable carries.
const EnvPrefix = "PORTFOLIO_"

// Session drivers.
const (
	SessionDriverMemory   = "memory"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

// Email delivery modes and providers.
const (
	DeliveryDirect = "direct"
	DeliveryQueue  = "queue"

	ProviderResend = "resend"
	ProviderLog    = "log"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected after loading.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Site          SiteConfig           `koanf:"site" validate:"required"`
	Session       SessionConfig        `koanf:"session" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Database      DatabaseConfig       `koanf:"database"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	// BodyLimit uses echo's size notation, e.g. "64K".
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// SiteConfig describes the public site the booking form lives on.
type SiteConfig struct {
	Brand      string `koanf:"brand" validate:"required"`
	City       string `koanf:"city"`
	AdminEmail string `koanf:"admin_email" validate:"required,email"`
	// PublicURL overrides the canonical origin used in page metadata.
	PublicURL string `koanf:"public_url" validate:"omitempty,url"`
}

// SessionConfig controls the session cookie and the backend storing
// CSRF tokens.
type SessionConfig struct {
	Driver       string        `koanf:"driver" validate:"required,oneof=memory redis postgres"`
	CookieName   string        `koanf:"cookie_name" validate:"required"`
	TTL          time.Duration `koanf:"ttl" validate:"min=1m"`
	SecureCookie bool          `koanf:"secure_cookie"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty means Redis is not configured.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Only required when the postgres session driver is selected.
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// Configured reports whether enough connection details are present to dial.
func (d DatabaseConfig) Configured() bool {
	return d.Host != "" && d.User != "" && d.Name != ""
}

// EmailConfig controls how booking notifications leave the service.
type EmailConfig struct {
	Delivery      string        `koanf:"delivery" validate:"required,oneof=direct queue"`
	Provider      string        `koanf:"provider" validate:"required,oneof=resend log"`
	ResendAPIKey  string        `koanf:"resend_api_key"`
	FromAddress   string        `koanf:"from_address" validate:"omitempty,email"`
	SendTimeout   time.Duration `koanf:"send_timeout" validate:"min=1s"`
	QueueMaxRetry int           `koanf:"queue_max_retry" validate:"min=0"`
}

// Default returns a Config populated with development-friendly defaults.
// Values read from the environment override these field by field.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15,
			WriteTimeout: 30,
			IdleTimeout:  60,
			BodyLimit:    "64K",
		},
		Site: SiteConfig{
			Brand:      "Valeria Photo",
			City:       "Одеса",
			AdminEmail: "hello@valeriaphoto.com",
		},
		Session: SessionConfig{
			Driver:     SessionDriverMemory,
			CookieName: "portfolio_session",
			TTL:        24 * time.Hour,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Email: EmailConfig{
			Delivery:    DeliveryDirect,
			Provider:    ProviderLog,
			SendTimeout: 10 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// Validate applies rules that span several blocks and cannot be
// expressed with struct tags.
func (c *Config) Validate() error {
	if c.Session.Driver == SessionDriverRedis && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required for the redis session driver")
	}
	if c.Session.Driver == SessionDriverPostgres && !c.Database.Configured() {
		return fmt.Errorf("database host, user and name are required for the postgres session driver")
	}
	if c.Email.Delivery == DeliveryQueue && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required for queued email delivery")
	}
	if c.Email.Provider == ProviderResend && c.Email.ResendAPIKey == "" {
		return fmt.Errorf("email.resend_api_key is required for the resend provider")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}

// envKey maps PORTFOLIO_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// over the defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix PORTFOLIO_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config (defaults survive for absent keys)
//   - Validates struct tags and cross-field rules
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env so
	// logs and traces agree on it.
	mainConfig.Observability.ServiceName = "valeria-photo"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
