package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config carries the process configuration, read from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// JWTSecret signs the anonymous connection-identity tokens.
	JWTSecret []byte
	// AllowedOrigins is the Origin allowlist for the WebSocket upgrade.
	// A single "*" permits every origin.
	AllowedOrigins []string
	// TokenTTL is the lifetime of an issued identity token.
	TokenTTL time.Duration
}

const (
	defaultPort     = "9000"
	defaultSecret   = "dev-only-insecure-secret"
	defaultOrigins  = "*"
	defaultTokenTTL = 72 * time.Hour
)

// Load builds the configuration from environment variables, falling back
// to development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      envOr("PORT", defaultPort),
		JWTSecret: []byte(envOr("JWT_SECRET", defaultSecret)),
		TokenTTL:  defaultTokenTTL,
	}

	for _, origin := range strings.Split(envOr("ALLOWED_ORIGINS", defaultOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	return cfg, nil
}

// OriginAllowed checks an Origin header value against the allowlist. An
// empty origin (non-browser client) is always allowed.
func (c *Config) OriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
