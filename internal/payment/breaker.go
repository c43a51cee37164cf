// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package payment

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("payment gateway circuit open")

var _ Gateway = (*BreakerGateway)(nil)

// BreakerGateway wraps a Gateway with a circuit breaker. Only transport
// failures and 5xx responses count as failures; a declined card is a
// successful round trip.
//
// The breaker uses wall-clock time for its interval and timeout.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[*Confirmation]
	name string
}

// BreakerSettings tunes the breaker.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// NewBreakerGateway wraps next.
func NewBreakerGateway(next Gateway, s BreakerSettings) *BreakerGateway {
	const name = "payment-gateway"
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Confirmation](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.ConsecutiveFailures
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening payment gateway circuit")
			}
			return trip
		},
		IsSuccessful: func(err error) bool {
			var gerr *GatewayError
			if errors.As(err, &gerr) {
				return gerr.Rejected()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] Payment gateway state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerGateway{next: next, cb: cb, name: name}
}

// Confirm implements Gateway.
func (b *BreakerGateway) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error) {
	c, err := b.cb.Execute(func() (*Confirmation, error) {
		return b.next.Confirm(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, ErrCircuitOpen
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return c, nil
}

// State returns the breaker state name.
func (b *BreakerGateway) State() string {
	return b.cb.State().String()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
