// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/mbtisaju/internal/models"
)

const pingTimeout = 2 * time.Second

func (h *Handler) databaseConnected(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.db.Ping(ctx) == nil
}

// Health reports overall status. It always answers 200; a failed database
// ping shows up as "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	dbConnected := h.databaseConnected(r.Context())
	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	rw.Success(models.HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		PaymentsEnabled:   h.payments != nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	})
}

// HealthLive answers 200 while the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":         true,
		"uptimeSeconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 503 until the database responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.databaseConnected(r.Context()) {
		rw.Error(http.StatusServiceUnavailable, ErrCodeUnavailable, "데이터베이스에 연결할 수 없습니다",
			map[string]interface{}{"databaseConnected": false})
		return
	}
	rw.Success(map[string]interface{}{
		"ready":             true,
		"databaseConnected": true,
	})
}
