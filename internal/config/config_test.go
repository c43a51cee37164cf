// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Payment.Enabled = true
	cfg.Payment.SecretKey = "test_sk_zXLkKEypNArWmo50nX3lmeaxYG5R"
	cfg.Notify.Enabled = true
	cfg.Notify.WebhookURL = "https://hooks.example.com/services/T000/B000"
	cfg.Security.JWTSecret = strings.Repeat("k", 40)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "SERVER_TIMEOUT"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"retry attempts", func(c *Config) { c.Database.RetryAttempts = 0 }, "DB_RETRY_ATTEMPTS"},
		{"cache size", func(c *Config) { c.Cache.Size = 0 }, "CACHE_SIZE"},
		{"gateway path", func(c *Config) { c.Payment.GatewayURL = "https://api.example.com/v1" }, "PAYMENT_GATEWAY_URL"},
		{"gateway scheme", func(c *Config) { c.Payment.GatewayURL = "ftp://api.example.com" }, "PAYMENT_GATEWAY_URL"},
		{"placeholder secret", func(c *Config) { c.Payment.SecretKey = "CHANGEME" }, "PAYMENT_SECRET_KEY"},
		{"breaker failures", func(c *Config) { c.Payment.BreakerFailures = 0 }, "PAYMENT_BREAKER_FAILURES"},
		{"idempotency ttl", func(c *Config) { c.Payment.IdempotencyTTL = time.Minute }, "PAYMENT_IDEMPOTENCY_TTL"},
		{"relative webhook", func(c *Config) { c.Notify.WebhookURL = "/hook" }, "NOTIFY_WEBHOOK_URL"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{
			"rate limit disabled in production",
			func(c *Config) {
				c.Server.Environment = "production"
				c.Security.CORSOrigins = []string{"https://saju.example"}
				c.Security.RateLimitDisabled = true
			},
			"DISABLE_RATE_LIMIT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() = %q, want mention of %s", err, tt.errMsg)
			}
		})
	}
}

func TestValidate_DisabledSectionsSkipped(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Payment.GatewayURL = ""
	cfg.Notify.WebhookURL = "not a url"
	cfg.Cache.Enabled = false
	cfg.Cache.Size = 0
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for disabled sections", err)
	}
}

func TestConfig_Helpers(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.AdminEnabled() {
		t.Error("AdminEnabled() true without JWT secret")
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() true for development")
	}
	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	if !cfg.AdminEnabled() {
		t.Error("AdminEnabled() false with JWT secret")
	}
	if !strings.Contains(cfg.String(), "admin=true") {
		t.Errorf("String() = %q", cfg.String())
	}
	if strings.Contains(cfg.String(), cfg.Security.JWTSecret) {
		t.Error("String() leaks the JWT secret")
	}
}
