// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/mbtisaju/internal/metrics"
	"github.com/tomtom215/mbtisaju/internal/models"
)

// MaxDailyRange bounds DailyAnalyses.
const MaxDailyRange = 366

// Overview returns headline counters. "Today" starts at UTC midnight.
func (db *DB) Overview(ctx context.Context) (s *models.OverviewStats, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("aggregate", "analyses", time.Since(start), err) }()

	today := db.now().UTC().Truncate(24 * time.Hour)
	s = &models.OverviewStats{}

	err = db.conn.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= ?),
			COALESCE(AVG(CASE WHEN is_lunar THEN 1.0 ELSE 0.0 END), 0),
			COUNT(*) FILTER (WHERE NOT time_known)
		FROM analyses`, today,
	).Scan(&s.TotalAnalyses, &s.AnalysesToday, &s.LunarShare, &s.UnknownTime)
	if err != nil {
		return nil, fmt.Errorf("overview analyses: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'paid'),
			CAST(COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) AS BIGINT)
		FROM orders`,
	).Scan(&s.TotalOrders, &s.PaidOrders, &s.RevenueKRW)
	if err != nil {
		return nil, fmt.Errorf("overview orders: %w", err)
	}
	s.LunarShare = round2(s.LunarShare * 100)
	return s, nil
}

// MBTIDistribution counts analyses per MBTI type, largest first.
func (db *DB) MBTIDistribution(ctx context.Context) ([]models.DistributionItem, error) {
	return db.distribution(ctx, "mbti_type")
}

// PrimarySibsinDistribution counts analyses per primary sibsin label.
func (db *DB) PrimarySibsinDistribution(ctx context.Context) ([]models.DistributionItem, error) {
	return db.distribution(ctx, "primary_sibsin")
}

// DayElementDistribution counts analyses per day master element.
func (db *DB) DayElementDistribution(ctx context.Context) ([]models.DistributionItem, error) {
	return db.distribution(ctx, "day_element")
}

// distribution groups by column, which must be one of the constants above.
func (db *DB) distribution(ctx context.Context, column string) (items []models.DistributionItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("aggregate", "analyses", time.Since(start), err) }()

	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) AS n
		FROM analyses
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s`, column)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distribution by %s: %w", column, err)
	}
	defer closeRows(rows)

	var total int64
	items = []models.DistributionItem{}
	for rows.Next() {
		var item models.DistributionItem
		if err = rows.Scan(&item.Label, &item.Count); err != nil {
			return nil, fmt.Errorf("scan distribution row: %w", err)
		}
		total += item.Count
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distribution rows: %w", err)
	}

	for i := range items {
		items[i].Percentage = round2(float64(items[i].Count) / float64(total) * 100)
	}
	return items, nil
}

// DailyAnalyses returns one entry per UTC day for the last days days,
// today included, with zero counts filled in.
func (db *DB) DailyAnalyses(ctx context.Context, days int) (out []models.DailyCount, err error) {
	if days <= 0 || days > MaxDailyRange {
		return nil, fmt.Errorf("days must be between 1 and %d, got %d", MaxDailyRange, days)
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("aggregate", "analyses", time.Since(start), err) }()

	today := db.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(days - 1))

	rows, err := db.conn.QueryContext(ctx, `SELECT CAST(CAST(created_at AS DATE) AS VARCHAR) AS d, COUNT(*)
		FROM analyses
		WHERE created_at >= ?
		GROUP BY d`, from)
	if err != nil {
		return nil, fmt.Errorf("daily analyses: %w", err)
	}
	defer closeRows(rows)

	counts := make(map[string]int64, days)
	for rows.Next() {
		var d string
		var n int64
		if err = rows.Scan(&d, &n); err != nil {
			return nil, fmt.Errorf("scan daily row: %w", err)
		}
		counts[d] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily rows: %w", err)
	}

	out = make([]models.DailyCount, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = models.DailyCount{Date: d, Count: counts[d]}
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
