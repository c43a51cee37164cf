// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/mbtisaju/internal/analysis"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/payment"
)

// StatsStore is the read-only aggregation surface behind the admin routes.
type StatsStore interface {
	Overview(ctx context.Context) (*models.OverviewStats, error)
	MBTIDistribution(ctx context.Context) ([]models.DistributionItem, error)
	PrimarySibsinDistribution(ctx context.Context) ([]models.DistributionItem, error)
	DayElementDistribution(ctx context.Context) ([]models.DistributionItem, error)
	DailyAnalyses(ctx context.Context, days int) ([]models.DailyCount, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services behind the HTTP routes.
//
// Handler methods are split across files by route group:
//   - handlers_health.go: liveness, readiness and status
//   - handlers_saju.go: stateless chart calculation and symbol tables
//   - handlers_mbti.go: questionnaire, scoring and type profiles
//   - handlers_analyses.go: stored analyses
//   - handlers_payments.go: products, orders, confirmation and reports
//   - handlers_admin.go: admin statistics
type Handler struct {
	analyses  *analysis.Service
	payments  *payment.Service
	stats     StatsStore
	db        Pinger
	version   string
	startTime time.Time
}

// HandlerDeps are the Handler's collaborators. Payments may be nil, which
// disables the order, payment and report routes.
type HandlerDeps struct {
	Analyses *analysis.Service
	Payments *payment.Service
	Stats    StatsStore
	DB       Pinger
	Version  string
}

// NewHandler builds a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		analyses:  deps.Analyses,
		payments:  deps.Payments,
		stats:     deps.Stats,
		db:        deps.DB,
		version:   version,
		startTime: time.Now(),
	}
}

// requirePayments writes a 503 and returns false when payments are off.
func (h *Handler) requirePayments(rw *ResponseWriter) bool {
	if h.payments != nil {
		return true
	}
	rw.Error(http.StatusServiceUnavailable, ErrCodeUnavailable, "결제 기능이 비활성화되어 있습니다", nil)
	return false
}

// publicCache marks a response as cacheable by browsers and proxies.
func publicCache(w http.ResponseWriter, maxAge time.Duration) {
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge/time.Second)))
}
