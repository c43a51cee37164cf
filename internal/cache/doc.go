// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package cache provides a generic LRU cache with per-entry TTL.
//
// Saju results are a pure function of the resolved birth input, so the
// analysis service memoizes them here:
//
//	c := cache.NewLRU[*saju.Result](4096, 24*time.Hour)
//	key := cache.GenerateKey("saju", in)
//	if r, ok := c.Get(key); ok {
//	    return r
//	}
//
// Get, Add and eviction are O(1). Expired entries are dropped lazily on
// access or in bulk with CleanupExpired.
package cache
