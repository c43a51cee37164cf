// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package models defines the records shared between the store, the services
and the HTTP layer.

Persisted records:

  - Analysis: one combined saju and MBTI reading
  - Order: a paid report order and its payment state

API shapes:

  - APIResponse, Metadata, APIError: the response envelope
  - HealthStatus: liveness and readiness payload
  - OverviewStats, DistributionItem, DailyCount: admin statistics

JSON keys are camelCase throughout to match the saju result payload.
*/
package models
