// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generated when absent", "", false},
		{"reused when well formed", "abc-123.def_4", true},
		{"replaced when malformed", "bad id\nwith newline", false},
		{"replaced when too long", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, corrID string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				corrID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != ctxID {
				t.Fatalf("header %q, context %q", got, ctxID)
			}
			if tt.reuse && got != tt.incoming {
				t.Errorf("id = %q, want %q", got, tt.incoming)
			}
			if !tt.reuse && got == tt.incoming {
				t.Errorf("id %q was not replaced", got)
			}
			if corrID == "" {
				t.Error("correlation id missing")
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/analyses/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/v1/analyses/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/some-uuid", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

func TestRoutePattern_NoRouter(t *testing.T) {
	t.Parallel()
	if got := routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)); got != unmatchedRoute {
		t.Errorf("routePattern = %q", got)
	}
}

func TestStatusWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)
	if _, err := sw.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	sw.WriteHeader(http.StatusTeapot)

	if sw.status != http.StatusOK || sw.bytes != 5 {
		t.Errorf("status %d bytes %d", sw.status, sw.bytes)
	}
	if sw.Unwrap() != rec {
		t.Error("Unwrap returned a different writer")
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("사주 ", 200)
	h := Compression(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))

	t.Run("gzip accepted", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Fatalf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
		}
		zr, err := gzip.NewReader(rec.Body)
		if err != nil {
			t.Fatal(err)
		}
		plain, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		if string(plain) != body {
			t.Error("decompressed body mismatch")
		}
	})

	t.Run("gzip not accepted", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Header().Get("Content-Encoding") != "" || rec.Body.String() != body {
			t.Error("uncompressed response altered")
		}
	})
}

func TestAccessLog_PassesThrough(t *testing.T) {
	t.Parallel()

	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if !isProbe("/api/v1/health/ready") || isProbe("/api/v1/saju") {
		t.Error("isProbe misclassified paths")
	}
}
