// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/models"
)

const defaultDailyDays = 30

// StatsOverview returns headline counters.
func (h *Handler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	stats, err := h.stats.Overview(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(stats)
}

// StatsMBTI returns the MBTI type distribution.
func (h *Handler) StatsMBTI(w http.ResponseWriter, r *http.Request) {
	h.distribution(w, r, h.stats.MBTIDistribution)
}

// StatsSibsin returns the primary relation distribution.
func (h *Handler) StatsSibsin(w http.ResponseWriter, r *http.Request) {
	h.distribution(w, r, h.stats.PrimarySibsinDistribution)
}

// StatsElements returns the day master element distribution.
func (h *Handler) StatsElements(w http.ResponseWriter, r *http.Request) {
	h.distribution(w, r, h.stats.DayElementDistribution)
}

func (h *Handler) distribution(w http.ResponseWriter, r *http.Request, query func(context.Context) ([]models.DistributionItem, error)) {
	rw := NewResponseWriter(w, r)
	items, err := query(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(items)
}

// StatsDaily returns zero-filled per-day analysis counts. The days query
// parameter defaults to 30.
func (h *Handler) StatsDaily(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	days := defaultDailyDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > database.MaxDailyRange {
			rw.Error(http.StatusBadRequest, ErrCodeValidation, "days는 1에서 "+strconv.Itoa(database.MaxDailyRange)+" 사이여야 합니다",
				map[string]interface{}{"field": "days", "value": raw})
			return
		}
		days = n
	}

	counts, err := h.stats.DailyAnalyses(r.Context(), days)
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(counts)
}

// StatsCache returns saju result cache counters.
func (h *Handler) StatsCache(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.analyses.CacheStats())
}
