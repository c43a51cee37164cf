// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
)

// DB wraps the DuckDB connection pool.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
	now  func() time.Time
}

// New opens the database at cfg.Path, creating parent directories and the
// schema as needed.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Path != ":memory:" && cfg.Path != "" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg, now: time.Now}
	db.configurePool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.createSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Database ready")
	return db, nil
}

// dsn appends DuckDB tuning options to the path.
func dsn(cfg *config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("access_mode", "read_write")
	if cfg.Threads > 0 {
		q.Set("threads", fmt.Sprint(cfg.Threads))
	}
	if cfg.MaxMemory != "" {
		q.Set("max_memory", cfg.MaxMemory)
	}
	return cfg.Path + "?" + q.Encode()
}

func (db *DB) configurePool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping checks the connection; used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	start := time.Now()
	err := db.conn.PingContext(ctx)
	metrics.RecordDBQuery("ping", "", time.Since(start), err)
	return err
}

// Close closes the pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Conn exposes the pool for tests and maintenance tooling.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// closeRows closes rows and logs a failure.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close rows")
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
