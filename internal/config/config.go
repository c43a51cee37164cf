// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in increasing order of precedence.
//
// Environment variables use flat legacy names (HTTP_PORT, DUCKDB_PATH,
// PAYMENT_SECRET_KEY, ...) mapped onto nested keys by envTransformFunc.
// Unmapped variables are ignored.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Payment    PaymentConfig    `koanf:"payment"`
	Notify     NotifyConfig     `koanf:"notify"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path          string        `koanf:"path"`
	MaxMemory     string        `koanf:"max_memory"`
	Threads       int           `koanf:"threads"` // 0 = DuckDB default
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
}

// CacheConfig controls the in-memory saju result cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
}

// PaymentConfig configures the payment gateway client.
type PaymentConfig struct {
	Enabled    bool          `koanf:"enabled"`
	GatewayURL string        `koanf:"gateway_url"`
	SecretKey  string        `koanf:"secret_key"`
	Timeout    time.Duration `koanf:"timeout"`

	// IdempotencyPath is the badger directory for confirmed payment keys.
	// Empty keeps the store in memory.
	IdempotencyPath string        `koanf:"idempotency_path"`
	IdempotencyTTL  time.Duration `koanf:"idempotency_ttl"`

	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// NotifyConfig configures the order webhook.
type NotifyConfig struct {
	Enabled     bool          `koanf:"enabled"`
	WebhookURL  string        `koanf:"webhook_url"`
	MinInterval time.Duration `koanf:"min_interval"`
}

// SecurityConfig holds admin token and HTTP protection settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// SupervisorConfig tunes the suture restart policy.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether production-only checks apply.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// AdminEnabled reports whether admin routes can be served.
func (c *Config) AdminEnabled() bool {
	return c.Security.JWTSecret != ""
}

func (c *Config) String() string {
	return fmt.Sprintf("server=%s env=%s db=%s payment=%t notify=%t admin=%t",
		c.Server.Addr(), c.Server.Environment, c.Database.Path,
		c.Payment.Enabled, c.Notify.Enabled, c.AdminEnabled())
}
