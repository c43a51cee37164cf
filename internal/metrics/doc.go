// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package metrics registers the service's Prometheus collectors with promauto
and offers small Record helpers so callers never touch label ordering.

Exposed at GET /metrics through promhttp.

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{tier}

Saju and MBTI:
  - saju_calculations_total{calendar,result}
  - saju_calculation_duration_seconds{calendar}
  - saju_primary_sibsin_total{label}
  - mbti_results_total{type,source}

Cache:
  - saju_cache_hits_total, saju_cache_misses_total, saju_cache_entries

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table}

Payments:
  - payment_confirmations_total{product,outcome}
  - payment_idempotent_replays_total
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Notifications:
  - notifications_total{outcome}
*/
package metrics
