// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/mbtisaju/internal/analysis"
)

// CreateAnalysis calculates and stores a chart with an optional MBTI
// outcome.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req analysis.Request
	if !decodeAndValidate(rw, &req) {
		return
	}

	a, err := h.analyses.Analyze(r.Context(), &req)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	w.Header().Set("Location", "/api/v1/analyses/"+a.ID)
	rw.Created(a)
}

// GetAnalysis returns a stored analysis. Malformed IDs are reported as not
// found.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondServiceError(rw, analysis.ErrNotFound)
		return
	}

	a, err := h.analyses.Get(r.Context(), id)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(a)
}
