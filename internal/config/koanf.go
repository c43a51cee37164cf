// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mbtisaju/config.yaml",
	"/etc/mbtisaju/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:          "/data/mbtisaju.duckdb",
			MaxMemory:     "512MB",
			Threads:       0,
			RetryAttempts: 3,
			RetryDelay:    200 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    4096,
			TTL:     24 * time.Hour, // charts never change; TTL only bounds memory churn
		},
		Payment: PaymentConfig{
			Enabled:         false,
			GatewayURL:      "https://api.tosspayments.com",
			SecretKey:       "",
			Timeout:         10 * time.Second,
			IdempotencyPath: "/data/payments",
			IdempotencyTTL:  72 * time.Hour,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Notify: NotifyConfig{
			Enabled:     false,
			WebhookURL:  "",
			MinInterval: time.Second,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			JWTIssuer:         "mbtisaju",
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//  1. Defaults from defaultConfig
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set by env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config keys.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_retry_attempts": "database.retry_attempts",
	"db_retry_delay":    "database.retry_delay",

	// Cache
	"cache_enabled": "cache.enabled",
	"cache_size":    "cache.size",
	"cache_ttl":     "cache.ttl",

	// Payment
	"payment_enabled":          "payment.enabled",
	"payment_gateway_url":      "payment.gateway_url",
	"payment_secret_key":       "payment.secret_key",
	"payment_timeout":          "payment.timeout",
	"payment_idempotency_path": "payment.idempotency_path",
	"payment_idempotency_ttl":  "payment.idempotency_ttl",
	"payment_breaker_failures": "payment.breaker_failures",
	"payment_breaker_timeout":  "payment.breaker_timeout",

	// Notify
	"notify_enabled":      "notify.enabled",
	"notify_webhook_url":  "notify.webhook_url",
	"notify_min_interval": "notify.min_interval",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
}

// envTransformFunc maps an environment variable name to a config key.
// Unmapped names return "" so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
