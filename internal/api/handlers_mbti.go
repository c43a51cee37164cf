// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mbtisaju/internal/mbti"
)

// ScoreRequest is the body of POST /mbti/score.
type ScoreRequest struct {
	Answers []mbti.Answer `json:"answers" validate:"required,min=4,max=60,dive"`
}

type questionnaire struct {
	Scale     [2]int          `json:"scale"`
	Questions []mbti.Question `json:"questions"`
}

// MBTIQuestions returns the questionnaire.
func (h *Handler) MBTIQuestions(w http.ResponseWriter, r *http.Request) {
	publicCache(w, time.Hour)
	NewResponseWriter(w, r).Success(questionnaire{
		Scale:     [2]int{mbti.MinValue, mbti.MaxValue},
		Questions: mbti.Questions(),
	})
}

// MBTIScore scores a completed questionnaire.
func (h *Handler) MBTIScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ScoreRequest
	if !decodeAndValidate(rw, &req) {
		return
	}

	result, err := mbti.Score(req.Answers)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(result)
}

// MBTITypes lists the sixteen profiles.
func (h *Handler) MBTITypes(w http.ResponseWriter, r *http.Request) {
	types := mbti.AllTypes()
	profiles := make([]mbti.Profile, 0, len(types))
	for _, t := range types {
		if p, ok := mbti.LookupProfile(t); ok {
			profiles = append(profiles, p)
		}
	}
	publicCache(w, time.Hour)
	NewResponseWriter(w, r).Success(profiles)
}

// MBTIType returns one profile. The path segment is case-insensitive.
func (h *Handler) MBTIType(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	t, err := mbti.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	profile, ok := mbti.LookupProfile(t)
	if !ok {
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "MBTI 유형을 찾을 수 없습니다", nil)
		return
	}
	publicCache(w, time.Hour)
	rw.Success(profile)
}
