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

	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
	"github.com/tomtom215/mbtisaju/internal/models"
)

// InsertOrder stores a new order.
func (db *DB) InsertOrder(ctx context.Context, o *models.Order) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "orders", time.Since(start), err) }()

	_, err = db.conn.ExecContext(ctx, `INSERT INTO orders (
		id, analysis_id, product, order_name, amount, status, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.AnalysisID, o.Product, o.OrderName, o.Amount, string(o.Status), o.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const orderColumns = `id, analysis_id, product, order_name, amount, status, payment_key, method, created_at, paid_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o          models.Order
		status     string
		paymentKey sql.NullString
		method     sql.NullString
		paidAt     sql.NullTime
	)
	if err := row.Scan(&o.ID, &o.AnalysisID, &o.Product, &o.OrderName, &o.Amount, &status,
		&paymentKey, &method, &o.CreatedAt, &paidAt); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	o.PaymentKey = paymentKey.String
	o.Method = method.String
	o.CreatedAt = o.CreatedAt.UTC()
	if paidAt.Valid {
		t := paidAt.Time.UTC()
		o.PaidAt = &t
	}
	return &o, nil
}

// GetOrder loads the order with id or returns ErrNotFound.
func (db *DB) GetOrder(ctx context.Context, id string) (o *models.Order, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "orders", time.Since(start), ignoreNotFound(err)) }()

	o, err = scanOrder(db.conn.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// MarkOrderPaid moves a pending order to paid inside a transaction,
// retrying on transaction conflicts. It returns ErrNotFound for an unknown
// order and ErrOrderNotPending if the order already left the pending state.
func (db *DB) MarkOrderPaid(ctx context.Context, id, paymentKey, method string, paidAt time.Time) error {
	return db.transitionOrder(ctx, id, models.OrderPaid, paymentKey, method, &paidAt)
}

// MarkOrderFailed moves a pending order to failed.
func (db *DB) MarkOrderFailed(ctx context.Context, id string) error {
	return db.transitionOrder(ctx, id, models.OrderFailed, "", "", nil)
}

func (db *DB) transitionOrder(ctx context.Context, id string, to models.OrderStatus, paymentKey, method string, paidAt *time.Time) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "orders", time.Since(start), ignoreNotFound(err)) }()

	return db.withRetry(ctx, "transition order", func(ctx context.Context) (err error) {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			if err != nil {
				if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
					logging.Ctx(ctx).Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
				}
			}
		}()

		var status string
		err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read order %s: %w", id, err)
		}
		if models.OrderStatus(status) != models.OrderPending {
			return fmt.Errorf("order %s is %s: %w", id, status, ErrOrderNotPending)
		}

		var paid sql.NullTime
		if paidAt != nil {
			paid = sql.NullTime{Time: paidAt.UTC(), Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE orders SET status = ?, payment_key = ?, method = ?, paid_at = ? WHERE id = ?`,
			string(to), nullString(paymentKey), nullString(method), paid, id,
		); err != nil {
			return fmt.Errorf("update order %s: %w", id, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit order %s: %w", id, err)
		}
		return nil
	})
}
