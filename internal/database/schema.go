// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS analyses (
		id             VARCHAR PRIMARY KEY,
		created_at     TIMESTAMP NOT NULL,
		name           VARCHAR,
		birth_year     INTEGER NOT NULL,
		birth_month    INTEGER NOT NULL,
		birth_day      INTEGER NOT NULL,
		time_index     INTEGER NOT NULL,
		time_known     BOOLEAN NOT NULL,
		is_lunar       BOOLEAN NOT NULL,
		is_leap_month  BOOLEAN NOT NULL,
		day_stem       VARCHAR NOT NULL,
		day_element    VARCHAR NOT NULL,
		primary_sibsin VARCHAR NOT NULL,
		mbti_type      VARCHAR,
		saju_json      VARCHAR NOT NULL,
		mbti_json      VARCHAR
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          VARCHAR PRIMARY KEY,
		analysis_id VARCHAR NOT NULL,
		product     VARCHAR NOT NULL,
		order_name  VARCHAR NOT NULL,
		amount      BIGINT NOT NULL,
		status      VARCHAR NOT NULL,
		payment_key VARCHAR,
		method      VARCHAR,
		created_at  TIMESTAMP NOT NULL,
		paid_at     TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_analysis ON orders (analysis_id)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
