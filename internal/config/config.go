// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Token store kinds.
const (
	TokenStoreSession = "session" // per browser, in the scs session
	TokenStoreFile    = "file"    // one identity, persisted to a file
	TokenStoreRedis   = "redis"   // one identity, persisted in Redis
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL        string `env:"BLOGFRONT_API_URL" envDefault:"http://localhost:5000/api"`
	DBPath        string `env:"BLOGFRONT_DB_PATH" envDefault:"./data/blogfront.db"`
	SessionSecret string `env:"BLOGFRONT_SESSION_SECRET,required"`
	ServerHost    string `env:"BLOGFRONT_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BLOGFRONT_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BLOGFRONT_ENV" envDefault:"development"`
	LogLevel      string `env:"BLOGFRONT_LOG_LEVEL" envDefault:"info"`

	// Token persistence
	TokenStore  string `env:"BLOGFRONT_TOKEN_STORE" envDefault:"session"`
	TokenFile   string `env:"BLOGFRONT_TOKEN_FILE" envDefault:"./data/token"`
	RedisURL    string `env:"BLOGFRONT_REDIS_URL"`                             // Required when TokenStore is redis
	RedisPrefix string `env:"BLOGFRONT_REDIS_PREFIX" envDefault:"blogfront:"` // Redis key prefix

	// JWTSecret verifies token signatures when set. Without it the token is
	// only decoded.
	JWTSecret string `env:"BLOGFRONT_JWT_SECRET"`

	SessionLifetime time.Duration `env:"BLOGFRONT_SESSION_LIFETIME" envDefault:"24h"`
	RequestTimeout  time.Duration `env:"BLOGFRONT_REQUEST_TIMEOUT" envDefault:"0s"` // Zero means no timeout
	RedirectDelay   time.Duration `env:"BLOGFRONT_REDIRECT_DELAY" envDefault:"1500ms"`

	// Login and registration throttling per client IP
	AuthRateLimit float64 `env:"BLOGFRONT_AUTH_RATE_LIMIT" envDefault:"0.5"` // Requests per second
	AuthRateBurst int     `env:"BLOGFRONT_AUTH_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SharedIdentity reports whether one token serves every browser, which is
// the case for the file and redis token stores.
func (c Config) SharedIdentity() bool {
	return c.TokenStore == TokenStoreFile || c.TokenStore == TokenStoreRedis
}

// VerifyTokens returns true if token signatures are checked.
func (c Config) VerifyTokens() bool {
	return c.JWTSecret != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The CSRF layer derives its 32-byte key from it.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BLOGFRONT_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BLOGFRONT_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BLOGFRONT_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("BLOGFRONT_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}

	switch cfg.TokenStore {
	case TokenStoreSession, TokenStoreFile:
	case TokenStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("BLOGFRONT_REDIS_URL is required when BLOGFRONT_TOKEN_STORE is %q", TokenStoreRedis)
		}
	default:
		return nil, fmt.Errorf("BLOGFRONT_TOKEN_STORE must be one of %q, %q or %q, got %q",
			TokenStoreSession, TokenStoreFile, TokenStoreRedis, cfg.TokenStore)
	}

	if cfg.AuthRateLimit <= 0 || cfg.AuthRateBurst <= 0 {
		return nil, fmt.Errorf("BLOGFRONT_AUTH_RATE_LIMIT and BLOGFRONT_AUTH_RATE_BURST must be positive")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
