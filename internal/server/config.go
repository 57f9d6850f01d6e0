package server

import (
	"strings"
	"time"

	"github.com/agentstation/jokeraudit/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings. The key is read from API_KEY.
	AuthEnabled bool
	AuthHeader  string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSOrigins:    []string{},
		AuthHeader:     "X-API-Key",
		RateLimit:      100,
		CacheTTL:       5 * time.Minute,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}

// normalize fills zero values from DefaultConfig and checks the rest.
func (c Config) normalize() (Config, error) {
	def := DefaultConfig()

	if c.PathPrefix == "" {
		c.PathPrefix = def.PathPrefix
	}
	if !strings.HasPrefix(c.PathPrefix, "/") {
		return c, &errors.ValidationError{Field: "prefix", Value: c.PathPrefix, Message: "must start with /"}
	}
	c.PathPrefix = strings.TrimRight(c.PathPrefix, "/")
	if c.PathPrefix == "" {
		return c, &errors.ValidationError{Field: "prefix", Value: "/", Message: "cannot be the root path"}
	}

	if c.Port < 0 || c.Port > 65535 {
		return c, &errors.ValidationError{Field: "port", Value: c.Port, Message: "must be between 0 and 65535"}
	}
	if c.RateLimit < 0 {
		return c, &errors.ValidationError{Field: "rate-limit", Value: c.RateLimit, Message: "cannot be negative"}
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.AuthHeader == "" {
		c.AuthHeader = def.AuthHeader
	}
	return c, nil
}
