// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a birth date does not exist in the
	// requested calendar or falls outside the supported range.
	ErrInvalidDate = errors.New("invalid birth date")

	// ErrInvalidTimeIndex is returned for time slots outside [0,11] that are
	// not the TimeUnknown sentinel.
	ErrInvalidTimeIndex = errors.New("invalid time slot index")

	// ErrTableDrift means the oracle produced a symbol missing from the
	// stem/branch tables. It indicates a programming error, not bad input.
	ErrTableDrift = errors.New("calendar oracle symbol not in correspondence tables")
)

// TableDriftError records which symbol failed translation.
type TableDriftError struct {
	Pillar Pillar
	Kind   string // "stem" or "branch"
	Symbol string
}

func (e *TableDriftError) Error() string {
	return fmt.Sprintf("%s: %s %s %q", ErrTableDrift.Error(), e.Pillar, e.Kind, e.Symbol)
}

// Unwrap lets errors.Is match ErrTableDrift.
func (e *TableDriftError) Unwrap() error {
	return ErrTableDrift
}
