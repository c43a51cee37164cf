// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for the CORS and rate limit
// middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	// RateLimitRequests and RateLimitWindow size the public tier; the other
	// tiers are fixed.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns the defaults. CORS origins are empty so
// cross-origin access must be configured explicitly.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID", "ETag"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddlewareConfigFromSecurity maps the security section onto a
// middleware config.
func ChiMiddlewareConfigFromSecurity(sec *config.SecurityConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = sec.CORSOrigins
	if sec.RateLimitReqs > 0 {
		cfg.RateLimitRequests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		cfg.RateLimitWindow = sec.RateLimitWindow
	}
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	return cfg
}

// ChiMiddleware builds chi-compatible middleware from a config.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the factory. A nil config uses the defaults.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{
		config: config,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: config.CORSAllowedMethods,
			AllowedHeaders: config.CORSAllowedHeaders,
			ExposedHeaders: config.CORSExposedHeaders,
			MaxAge:         config.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitConfig sizes one rate limit tier.
type RateLimitConfig struct {
	Name     string
	Requests int
	Window   time.Duration
}

// Fixed rate limit tiers.
var (
	// RateLimitHealth allows frequent probes from monitoring.
	RateLimitHealth = RateLimitConfig{Name: "health", Requests: 1000, Window: time.Minute}

	// RateLimitWrite protects the analyses table from floods.
	RateLimitWrite = RateLimitConfig{Name: "write", Requests: 30, Window: time.Minute}

	// RateLimitPayment limits order creation and confirmation.
	RateLimitPayment = RateLimitConfig{Name: "payment", Requests: 10, Window: time.Minute}

	// RateLimitAdmin limits the admin dashboard.
	RateLimitAdmin = RateLimitConfig{Name: "admin", Requests: 120, Window: time.Minute}
)

// RateLimitCustom returns a per-IP limiter for tier. Rejections are counted
// by tier and answered with a RATE_LIMIT_EXCEEDED envelope.
func (m *ChiMiddleware) RateLimitCustom(tier RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		tier.Requests,
		tier.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(tier.Name)
			logging.Ctx(r.Context()).Debug().Str("tier", tier.Name).Str("path", r.URL.Path).Msg("Rate limit exceeded")
			respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요", nil)
		}),
	)
}

// RateLimit returns the configurable public tier.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitConfig{
		Name:     "public",
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	})
}

// RateLimitHealth returns the probe tier.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitHealth)
}

// RateLimitWrite returns the write tier.
func (m *ChiMiddleware) RateLimitWrite() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitWrite)
}

// RateLimitPayment returns the payment tier.
func (m *ChiMiddleware) RateLimitPayment() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitPayment)
}

// RateLimitAdmin returns the admin tier.
func (m *ChiMiddleware) RateLimitAdmin() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitAdmin)
}

// APISecurityHeaders sets nosniff, frame denial and referrer policy on every
// response, plus HSTS when the request arrived over TLS.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
