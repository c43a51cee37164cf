// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/mbtisaju/internal/logging"
)

// maxConsecutiveTaskErrors is how many failed runs in a row make Serve
// return, handing the decision to restart to the supervisor.
const maxConsecutiveTaskErrors = 3

// CacheSweeper is satisfied by *analysis.Service.
type CacheSweeper interface {
	SweepCache() int
}

// GarbageCollector is satisfied by *payment.IdempotencyStore.
type GarbageCollector interface {
	RunGC() error
}

// PeriodicService runs task every interval until the context is canceled.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
}

// NewPeriodicService creates a service named name. A non-positive interval
// means one minute.
func NewPeriodicService(name string, interval time.Duration, task func(ctx context.Context) error) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// NewCacheSweeper drops expired saju cache entries every interval.
func NewCacheSweeper(sweeper CacheSweeper, interval time.Duration) *PeriodicService {
	logger := logging.WithComponent("cache-sweeper")
	return NewPeriodicService("cache-sweeper", interval, func(context.Context) error {
		if n := sweeper.SweepCache(); n > 0 {
			logger.Debug().Int("removed", n).Msg("Swept expired cache entries")
		}
		return nil
	})
}

// NewStoreGC runs badger value log GC every interval.
func NewStoreGC(gc GarbageCollector, interval time.Duration) *PeriodicService {
	return NewPeriodicService("idempotency-gc", interval, func(context.Context) error {
		return gc.RunGC()
	})
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(p.name)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.task(ctx); err != nil {
				failures++
				logger.Warn().Err(err).Int("consecutive", failures).Msg("Periodic task failed")
				if failures >= maxConsecutiveTaskErrors {
					return fmt.Errorf("%s: %d consecutive failures: %w", p.name, failures, err)
				}
				continue
			}
			failures = 0
		}
	}
}

// String names the service in supervisor events.
func (p *PeriodicService) String() string {
	return p.name
}
