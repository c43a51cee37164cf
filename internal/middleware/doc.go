// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package middleware holds the net/http middleware shared by every route.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: honours or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    the chi route pattern so path parameters do not explode cardinality
  - AccessLog: one zerolog line per request
  - Compression: gzip for clients that accept it

Typical stack:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
