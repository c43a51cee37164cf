// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mbtisaju/internal/analysis"
	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:     []string{"https://saju.example"},
		RateLimitReqs:   50,
		RateLimitWindow: 30 * time.Second,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.RateLimitRequests != 50 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("config = %+v", cfg)
	}

	defaults := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{})
	if defaults.RateLimitRequests != 100 || defaults.RateLimitWindow != time.Minute {
		t.Errorf("zero values did not fall back to defaults: %+v", defaults)
	}
}

func TestRateLimitCustom(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	h := m.RateLimitCustom(RateLimitConfig{Name: "test", Requests: 2, Window: time.Minute})(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = rec.Code
		if i == 2 {
			var e envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if e.Error == nil || e.Error.Code != ErrCodeRateLimited {
				t.Errorf("error = %+v", e.Error)
			}
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestRateLimitCustom_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	h := m.RateLimitCustom(RateLimitConfig{Name: "test", Requests: 1, Window: time.Minute})(okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://saju.example"}
	h := NewChiMiddleware(cfg).CORS()(okHandler())

	tests := []struct {
		origin string
		want   string
	}{
		{"https://saju.example", "https://saju.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/saju", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	t.Parallel()

	h := APISecurityHeaders()(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}

func TestETag(t *testing.T) {
	t.Parallel()

	a, b := generateETag(map[string]int{"n": 1}), generateETag(map[string]int{"n": 2})
	if a == "" || a == b {
		t.Errorf("etags %q, %q", a, b)
	}
	if generateETag(map[string]int{"n": 1}) != a {
		t.Error("etag not deterministic")
	}

	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{"*", true},
		{`"abd"`, false},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid date", fmt.Errorf("map: %w", saju.ErrInvalidDate), http.StatusBadRequest, ErrCodeInvalidDate},
		{"invalid slot", saju.ErrInvalidTimeIndex, http.StatusBadRequest, ErrCodeInvalidDate},
		{"mbti conflict", analysis.ErrMBTIConflict, http.StatusBadRequest, ErrCodeValidation},
		{"bad answer", mbti.ErrInvalidAnswer, http.StatusBadRequest, ErrCodeValidation},
		{"analysis missing", analysis.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"order missing", payment.ErrOrderNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"amount", payment.ErrAmountMismatch, http.StatusBadRequest, ErrCodeAmountMismatch},
		{"not paid", analysis.ErrNotPaid, http.StatusPaymentRequired, ErrCodePaymentFailed},
		{"key reused", payment.ErrKeyReused, http.StatusConflict, ErrCodePaymentFailed},
		{"confirm in flight", payment.ErrConfirmInFlight, http.StatusConflict, ErrCodePaymentFailed},
		{"circuit open", payment.ErrCircuitOpen, http.StatusServiceUnavailable, ErrCodeUnavailable},
		{"declined", &payment.GatewayError{StatusCode: 400, Code: "REJECT"}, http.StatusBadRequest, ErrCodePaymentFailed},
		{"gateway 500", &payment.GatewayError{StatusCode: 500, Code: "FAILED"}, http.StatusBadGateway, ErrCodePaymentFailed},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			respondServiceError(NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)), tt.err)

			var e envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rec.Code != tt.status || e.Error == nil || e.Error.Code != tt.code {
				t.Errorf("got %d %+v, want %d %s", rec.Code, e.Error, tt.status, tt.code)
			}
			if e.Status != models.StatusError {
				t.Errorf("envelope = %+v", e)
			}
		})
	}
}

func TestInternalError_DoesNotEcho(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)).InternalError(errors.New("secret dsn password=hunter2"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); len(body) == 0 || strings.Contains(body, "hunter2") {
		t.Errorf("body = %s", body)
	}
}
