// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package database is the DuckDB store for analyses and report orders.
//
// Files:
//   - database.go: connection lifecycle and pool tuning
//   - schema.go: idempotent table and index creation
//   - retry.go: transaction-conflict detection and backoff
//   - analyses.go: analysis insert and lookup
//   - orders.go: order insert, lookup and payment state transitions
//   - stats.go: read-only aggregations for the admin dashboard
//
// Full results are stored as JSON next to a few flattened columns (day
// stem, day element, primary sibsin, MBTI type) that the aggregations group
// by. Timestamps are stored in UTC with microsecond precision.
//
// Use Path ":memory:" for tests.
package database
