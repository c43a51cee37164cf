// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mbtisaju/internal/logging"
)

// AccessLog writes one line per request. 5xx responses log at warn, health
// and metrics probes at debug.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		level := zerolog.InfoLevel
		switch {
		case sw.status >= http.StatusInternalServerError:
			level = zerolog.WarnLevel
		case isProbe(r.URL.Path):
			level = zerolog.DebugLevel
		}

		logging.Ctx(r.Context()).WithLevel(level).
			Str("method", r.Method).
			Str("route", routePattern(r)).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request")
	})
}

func isProbe(path string) bool {
	switch path {
	case "/metrics", "/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready":
		return true
	}
	return false
}
