// Package config provides centralized configuration management for the service.
// It loads settings from environment variables with defaults and validates them
// on startup so misconfiguration fails fast.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Event    EventConfig
	Security SecurityConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout per request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxBodySize caps the request body in bytes. Registrations carry the
	// payment screenshot inline, so this needs headroom (default: 20MB).
	MaxBodySize int64 `env:"SERVER_MAX_BODY_SIZE" default:"20971520"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required).
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection closes (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// EventConfig holds event-specific registration settings.
type EventConfig struct {
	// Name is the event name stamped on registrations that omit one.
	Name string `env:"EVENT_NAME" default:"INNOVERSE 26"`

	// ReservedCollege is the institution with a capped number of team slots.
	// Empty disables the capacity rule and the spelling check.
	ReservedCollege string `env:"RESERVED_COLLEGE"`

	// ReservedCollegeSlug is the URL slug for the slot-status endpoint.
	// Derived from ReservedCollege when unset.
	ReservedCollegeSlug string `env:"RESERVED_COLLEGE_SLUG"`

	// ReservedCollegeLimit is the number of teams whose leader may claim
	// the reserved institution (default: 10).
	ReservedCollegeLimit int `env:"RESERVED_COLLEGE_LIMIT" default:"10"`

	// PublicBaseURL prefixes payment-image links in the export.
	// Empty produces relative links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// ExportFilename is the attachment filename for the spreadsheet export.
	ExportFilename string `env:"EXPORT_FILENAME" default:"registrations.xlsx"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// AdminKey is the shared secret expected in the x-admin-key header
	// on export requests (required).
	AdminKey string `env:"ADMIN_KEY" required:"true"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether per-IP rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP request budget (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Slug returns the URL slug addressing the reserved institution.
func (c *EventConfig) Slug() string {
	if c.ReservedCollegeSlug != "" {
		return c.ReservedCollegeSlug
	}
	return slugify(c.ReservedCollege)
}

// slugify lowercases s and replaces non-alphanumeric runs with single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.MaxBodySize <= 0 {
		problems = append(problems, "SERVER_MAX_BODY_SIZE must be positive")
	}
	if c.Database.MaxConns < 1 {
		problems = append(problems, "DB_MAX_CONNS must be at least 1")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		problems = append(problems, "DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.Event.ReservedCollegeLimit < 0 {
		problems = append(problems, "RESERVED_COLLEGE_LIMIT must not be negative")
	}
	if c.Rate.Enabled && c.Rate.RequestsPerMinute < 1 {
		problems = append(problems, "RATE_LIMIT_REQUESTS_PER_MINUTE must be at least 1")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
