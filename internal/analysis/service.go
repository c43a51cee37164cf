// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/mbtisaju/internal/cache"
	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/metrics"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

var (
	// ErrNotFound is returned for unknown analysis IDs.
	ErrNotFound = errors.New("analysis not found")

	// ErrMBTIConflict is returned when a request both declares a type and
	// submits answers.
	ErrMBTIConflict = errors.New("declare an MBTI type or submit answers, not both")
)

// Store persists analyses.
type Store interface {
	InsertAnalysis(ctx context.Context, a *models.Analysis) error
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
}

// Service runs and stores analyses.
type Service struct {
	analyzer *saju.Analyzer
	store    Store
	cache    *cache.LRU[*saju.Result]
	now      func() time.Time
}

// NewService builds a Service. Caching is skipped when cfg is nil or
// disabled.
func NewService(analyzer *saju.Analyzer, store Store, cfg *config.CacheConfig) *Service {
	s := &Service{analyzer: analyzer, store: store, now: time.Now}
	if cfg != nil && cfg.Enabled {
		s.cache = cache.NewLRU[*saju.Result](cfg.Size, cfg.TTL)
	}
	return s
}

// Calculate returns the chart for in, reporting whether it came from the
// cache.
func (s *Service) Calculate(in saju.BirthInput) (*saju.Result, bool, error) {
	key := cache.GenerateKey("saju", in)
	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			metrics.RecordCacheLookup(true)
			return r, true, nil
		}
		metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	r, err := s.analyzer.Analyze(in)
	switch {
	case errors.Is(err, saju.ErrInvalidDate), errors.Is(err, saju.ErrInvalidTimeIndex):
		metrics.RecordSajuCalculation(in.IsLunar, "invalid_date", time.Since(start))
		return nil, false, err
	case err != nil:
		metrics.RecordSajuCalculation(in.IsLunar, "error", time.Since(start))
		return nil, false, fmt.Errorf("saju calculation: %w", err)
	}
	metrics.RecordSajuCalculation(in.IsLunar, "success", time.Since(start))

	if s.cache != nil {
		s.cache.Add(key, r)
		metrics.SetCacheEntries(s.cache.Len())
	}
	return r, false, nil
}

// Analyze calculates, resolves MBTI and stores a new analysis.
func (s *Service) Analyze(ctx context.Context, req *Request) (*models.Analysis, error) {
	outcome, err := ResolveMBTI(req.MBTI, req.Answers)
	if err != nil {
		return nil, err
	}

	result, _, err := s.Calculate(req.Input())
	if err != nil {
		return nil, err
	}

	a := &models.Analysis{
		ID:        uuid.New().String(),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		Name:      req.Name,
		Saju:      result,
		MBTI:      outcome,
	}
	if err := s.store.InsertAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	source := ""
	if outcome != nil {
		source = outcome.Source
	}
	metrics.RecordAnalysisStored(a.PrimarySibsin(), a.MBTIType(), source)
	logging.Ctx(ctx).Info().
		Str("analysis_id", a.ID).
		Str("primary", a.PrimarySibsin()).
		Str("mbti", a.MBTIType()).
		Bool("lunar", req.IsLunar).
		Msg("Analysis stored")
	return a, nil
}

// Get loads a stored analysis.
func (s *Service) Get(ctx context.Context, id string) (*models.Analysis, error) {
	a, err := s.store.GetAnalysis(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load analysis: %w", err)
	}
	return a, nil
}

// ResolveMBTI turns a declared type or a set of answers into an outcome.
// It returns nil when neither is given.
func ResolveMBTI(declared string, answers []mbti.Answer) (*models.MBTIOutcome, error) {
	switch {
	case declared != "" && len(answers) > 0:
		return nil, ErrMBTIConflict
	case declared != "":
		t, err := mbti.ParseType(declared)
		if err != nil {
			return nil, err
		}
		profile, _ := mbti.LookupProfile(t)
		return &models.MBTIOutcome{Type: t, Source: models.MBTISourceDeclared, Profile: profile}, nil
	case len(answers) > 0:
		r, err := mbti.Score(answers)
		if err != nil {
			return nil, err
		}
		return &models.MBTIOutcome{
			Type:    r.Type,
			Source:  models.MBTISourceQuestionnaire,
			Profile: r.Profile,
			Axes:    r.Axes[:],
		}, nil
	}
	return nil, nil
}

// CacheStats exposes cache counters; zero when caching is disabled.
func (s *Service) CacheStats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}

// SweepCache drops expired cache entries and returns how many were removed.
func (s *Service) SweepCache() int {
	if s.cache == nil {
		return 0
	}
	n := s.cache.CleanupExpired()
	metrics.SetCacheEntries(s.cache.Len())
	return n
}
