// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/mbtisaju/internal/logging"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("database: not found")

	// ErrOrderNotPending is returned when a payment transition targets an
	// order that is no longer pending.
	ErrOrderNotPending = errors.New("database: order is not pending")
)

func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Transaction conflict") ||
		strings.Contains(s, "Conflict on update") ||
		strings.Contains(s, "Conflict on tuple deletion")
}

func isInternalError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "INTERNAL Error")
}

// withRetry runs fn, retrying DuckDB transaction conflicts with exponential
// backoff starting at the configured delay. Other errors return at once.
func (db *DB) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := db.cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := db.cfg.RetryDelay
	if delay <= 0 {
		delay = 10 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if isInternalError(err) {
			return fmt.Errorf("%s: duckdb internal error: %w", op, err)
		}
		if !isTransactionConflict(err) || attempt == attempts-1 {
			return err
		}

		backoff := delay << uint(attempt)
		logging.Ctx(ctx).Debug().Str("op", op).Int("attempt", attempt+1).Dur("backoff", backoff).Msg("Retrying after transaction conflict")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s: max retries exceeded: %w", op, lastErr)
}
