// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package analysis combines a saju chart with an MBTI type, persists the
// result and renders the paid consultation report.
//
// Saju results are cached by birth input. Cached results are shared between
// callers and must be treated as read-only.
package analysis
