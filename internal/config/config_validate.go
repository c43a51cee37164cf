// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minJWTSecretLength is the shortest HS256 secret accepted.
const minJWTSecretLength = 32

var (
	validLogLevels     = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats    = map[string]bool{"json": true, "console": true}
	validEnvironments  = map[string]bool{"development": true, "staging": true, "production": true}
	placeholderSecrets = []string{"CHANGEME", "CHANGE_ME", "REPLACE", "YOUR_SECRET", "PLACEHOLDER", "EXAMPLE"}
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validatePayment(); err != nil {
		return err
	}
	if err := c.validateNotify(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.RetryAttempts < 1 || c.Database.RetryAttempts > 10 {
		return fmt.Errorf("DB_RETRY_ATTEMPTS must be between 1 and 10")
	}
	if c.Database.RetryDelay < 0 || c.Database.RetryDelay > 10*time.Second {
		return fmt.Errorf("DB_RETRY_DELAY must be between 0 and 10s")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("CACHE_SIZE must be positive when CACHE_ENABLED=true")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when CACHE_ENABLED=true")
	}
	return nil
}

func (c *Config) validatePayment() error {
	if !c.Payment.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Payment.GatewayURL, "PAYMENT_GATEWAY_URL"); err != nil {
		return err
	}
	if c.Payment.SecretKey == "" {
		return fmt.Errorf("PAYMENT_SECRET_KEY is required when PAYMENT_ENABLED=true")
	}
	if isPlaceholder(c.Payment.SecretKey) {
		return fmt.Errorf("PAYMENT_SECRET_KEY contains a placeholder value")
	}
	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be positive")
	}
	if c.Payment.BreakerFailures == 0 {
		return fmt.Errorf("PAYMENT_BREAKER_FAILURES must be at least 1")
	}
	if c.Payment.IdempotencyTTL < time.Hour {
		return fmt.Errorf("PAYMENT_IDEMPOTENCY_TTL must be at least 1h")
	}
	return nil
}

func (c *Config) validateNotify() error {
	if !c.Notify.Enabled {
		return nil
	}
	if c.Notify.WebhookURL == "" {
		return fmt.Errorf("NOTIFY_WEBHOOK_URL is required when NOTIFY_ENABLED=true")
	}
	u, err := url.Parse(c.Notify.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("NOTIFY_WEBHOOK_URL must be an absolute http(s) URL")
	}
	if c.Notify.MinInterval < 0 {
		return fmt.Errorf("NOTIFY_MIN_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret != "" {
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
		}
		if isPlaceholder(c.Security.JWTSecret) {
			return fmt.Errorf("JWT_SECRET contains a placeholder value")
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
		}
		if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h")
		}
	}

	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * when ENVIRONMENT=production")
			}
		}
		if c.Security.RateLimitDisabled {
			return fmt.Errorf("DISABLE_RATE_LIMIT is not allowed when ENVIRONMENT=production")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL accepts only a base http(s) URL without path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}

func isPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderSecrets {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}
