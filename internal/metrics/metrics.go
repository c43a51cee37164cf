// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"tier"},
	)

	// Saju and MBTI
	SajuCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saju_calculations_total",
			Help: "Total number of four pillars calculations",
		},
		[]string{"calendar", "result"}, // calendar: solar, lunar; result: success, invalid_date, error
	)

	SajuCalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saju_calculation_duration_seconds",
			Help:    "Duration of uncached four pillars calculations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"calendar"},
	)

	SajuPrimarySibsin = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saju_primary_sibsin_total",
			Help: "Primary sibsin labels of stored analyses",
		},
		[]string{"label"},
	)

	MBTIResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mbti_results_total",
			Help: "MBTI types attached to analyses",
		},
		[]string{"type", "source"},
	)

	// Cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saju_cache_hits_total",
			Help: "Total number of saju result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saju_cache_misses_total",
			Help: "Total number of saju result cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "saju_cache_entries",
			Help: "Current number of cached saju results",
		},
	)

	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Payments
	PaymentConfirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_confirmations_total",
			Help: "Payment confirmation attempts by outcome",
		},
		[]string{"product", "outcome"}, // outcome: paid, amount_mismatch, gateway_error, circuit_open, error
	)

	PaymentIdempotentReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_idempotent_replays_total",
			Help: "Confirmations answered from the idempotency store",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Notifications
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Webhook notifications by outcome",
		},
		[]string{"outcome"}, // sent, failed, dropped
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRateLimitHit counts a 429 for tier.
func RecordRateLimitHit(tier string) {
	APIRateLimitHits.WithLabelValues(tier).Inc()
}

func calendarLabel(isLunar bool) string {
	if isLunar {
		return "lunar"
	}
	return "solar"
}

// RecordSajuCalculation records an uncached calculation. result is one of
// success, invalid_date or error.
func RecordSajuCalculation(isLunar bool, result string, duration time.Duration) {
	cal := calendarLabel(isLunar)
	SajuCalculations.WithLabelValues(cal, result).Inc()
	SajuCalculationDuration.WithLabelValues(cal).Observe(duration.Seconds())
}

// RecordAnalysisStored counts the labels of a persisted analysis. mbtiType
// may be empty.
func RecordAnalysisStored(primary, mbtiType, mbtiSource string) {
	SajuPrimarySibsin.WithLabelValues(primary).Inc()
	if mbtiType != "" {
		MBTIResults.WithLabelValues(mbtiType, mbtiSource).Inc()
	}
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
		return
	}
	CacheMisses.Inc()
}

// SetCacheEntries publishes the cache size.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// RecordDBQuery records a database query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordPayment counts a confirmation outcome.
func RecordPayment(product, outcome string) {
	PaymentConfirmations.WithLabelValues(product, outcome).Inc()
}

// RecordIdempotentReplay counts a confirmation served from the store.
func RecordIdempotentReplay() {
	PaymentIdempotentReplays.Inc()
}

// RecordNotification counts a webhook outcome.
func RecordNotification(outcome string) {
	Notifications.WithLabelValues(outcome).Inc()
}
