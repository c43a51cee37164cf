// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mbtisaju/internal/metrics"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// InsertAnalysis stores a.
func (db *DB) InsertAnalysis(ctx context.Context, a *models.Analysis) (err error) {
	if a.Saju == nil {
		return fmt.Errorf("insert analysis %s: missing saju result", a.ID)
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "analyses", time.Since(start), err) }()

	sajuJSON, err := json.Marshal(a.Saju)
	if err != nil {
		return fmt.Errorf("encode saju result: %w", err)
	}
	var mbtiJSON sql.NullString
	if a.MBTI != nil {
		b, mErr := json.Marshal(a.MBTI)
		if mErr != nil {
			return fmt.Errorf("encode mbti result: %w", mErr)
		}
		mbtiJSON = sql.NullString{String: string(b), Valid: true}
	}

	info := a.Saju.BirthInfo
	_, err = db.conn.ExecContext(ctx, `INSERT INTO analyses (
		id, created_at, name,
		birth_year, birth_month, birth_day, time_index, time_known, is_lunar, is_leap_month,
		day_stem, day_element, primary_sibsin, mbti_type, saju_json, mbti_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CreatedAt.UTC(), nullString(a.Name),
		info.Year, info.Month, info.Day, info.TimeIndex, info.TimeKnown, info.IsLunar, info.IsLeapMonth,
		a.DayStem(), a.DayElement(), a.PrimarySibsin(), nullString(a.MBTIType()),
		string(sajuJSON), mbtiJSON,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", a.ID, err)
	}
	return nil
}

// GetAnalysis loads the analysis with id or returns ErrNotFound.
func (db *DB) GetAnalysis(ctx context.Context, id string) (a *models.Analysis, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("select", "analyses", time.Since(start), ignoreNotFound(err))
	}()

	var (
		name     sql.NullString
		sajuJSON string
		mbtiJSON sql.NullString
	)
	a = &models.Analysis{}
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, created_at, name, saju_json, mbti_json FROM analyses WHERE id = ?`, id,
	).Scan(&a.ID, &a.CreatedAt, &name, &sajuJSON, &mbtiJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}

	a.CreatedAt = a.CreatedAt.UTC()
	a.Name = name.String
	a.Saju = &saju.Result{}
	if err = json.Unmarshal([]byte(sajuJSON), a.Saju); err != nil {
		return nil, fmt.Errorf("decode saju result of %s: %w", id, err)
	}
	if mbtiJSON.Valid {
		a.MBTI = &models.MBTIOutcome{}
		if err = json.Unmarshal([]byte(mbtiJSON.String), a.MBTI); err != nil {
			return nil, fmt.Errorf("decode mbti result of %s: %w", id, err)
		}
	}
	return a, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
