// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	idempotencyKeyPrefix = "confirm:"
	reservationKeyPrefix = "inflight:"
)

var (
	// ErrNoOutcome is returned by IdempotencyStore.Get for unknown keys.
	ErrNoOutcome = errors.New("no stored outcome")

	// ErrConfirmInFlight is returned by Reserve while another confirmation
	// holds the order.
	ErrConfirmInFlight = errors.New("confirmation already in progress")
)

// Outcome is what a successful confirmation produced.
type Outcome struct {
	OrderID    string    `json:"orderId"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	ApprovedAt time.Time `json:"approvedAt"`
}

// IdempotencyStore remembers confirmed payment keys for a TTL.
type IdempotencyStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenIdempotencyStore opens a badger store at path, or an in-memory store
// when path is empty.
func OpenIdempotencyStore(path string, ttl time.Duration) (*IdempotencyStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true).WithMemTableSize(16 << 20)
	} else {
		opts.SyncWrites = true
		opts.ValueLogFileSize = 16 << 20
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open idempotency store: %w", err)
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &IdempotencyStore{db: db, ttl: ttl}, nil
}

// Get returns the stored outcome for paymentKey or ErrNoOutcome.
func (s *IdempotencyStore) Get(_ context.Context, paymentKey string) (*Outcome, error) {
	var out Outcome
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idempotencyKeyPrefix + paymentKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoOutcome
		}
		if err != nil {
			return fmt.Errorf("get outcome: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put stores outcome under paymentKey with the store's TTL.
func (s *IdempotencyStore) Put(_ context.Context, paymentKey string, outcome *Outcome) error {
	if paymentKey == "" {
		return errors.New("payment key cannot be empty")
	}
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(idempotencyKeyPrefix+paymentKey), data).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
}

// Reserve marks orderID as being confirmed until Release or until ttl
// elapses. Concurrent reservations of the same order resolve through
// badger's transaction conflict detection: exactly one succeeds.
func (s *IdempotencyStore) Reserve(_ context.Context, orderID string, ttl time.Duration) error {
	key := []byte(reservationKeyPrefix + orderID)
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrConfirmInFlight
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get reservation: %w", err)
		}
		return txn.SetEntry(badger.NewEntry(key, []byte{1}).WithTTL(ttl))
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrConfirmInFlight
	}
	return err
}

// Release drops the reservation on orderID.
func (s *IdempotencyStore) Release(_ context.Context, orderID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(reservationKeyPrefix + orderID))
	})
}

// Close closes the underlying badger database.
func (s *IdempotencyStore) Close() error {
	return s.db.Close()
}

// RunGC rewrites value log files until badger reports nothing left to
// reclaim. In-memory stores have no value log and return nil.
func (s *IdempotencyStore) RunGC() error {
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}
