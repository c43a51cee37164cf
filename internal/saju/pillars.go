// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"fmt"
	"time"
)

// Pillar identifies one of the four time categories.
type Pillar int

const (
	PillarYear Pillar = iota
	PillarMonth
	PillarDay
	PillarHour
)

var pillarNames = [4]string{"year", "month", "day", "hour"}

func (p Pillar) String() string {
	if p < PillarYear || p > PillarHour {
		return fmt.Sprintf("Pillar(%d)", int(p))
	}
	return pillarNames[p]
}

const (
	// TimeUnknown is the time-slot sentinel for "birth time not known".
	TimeUnknown = -1

	// DefaultTimeSlot replaces an unknown time slot. Slot 6 is the midday
	// slot, so unknown births are computed as if born at 12:00.
	DefaultTimeSlot = 6

	// MaxTimeSlot is the last of the twelve two-hour slots.
	MaxTimeSlot = 11
)

// StemBranchPair is a single pillar: one stem and one branch.
type StemBranchPair struct {
	Stem   Stem
	Branch Branch
}

func (p StemBranchPair) String() string {
	return stemTable[p.Stem].hangul + branchTable[p.Branch].hangul
}

// Hanja returns the pair in Chinese characters, e.g. "甲子".
func (p StemBranchPair) Hanja() string {
	return stemTable[p.Stem].hanja + branchTable[p.Branch].hanja
}

// FourPillars holds the year, month, day and hour pillars in that order.
type FourPillars [4]StemBranchPair

// Year returns the year pillar.
func (fp FourPillars) Year() StemBranchPair { return fp[PillarYear] }

// Month returns the month pillar.
func (fp FourPillars) Month() StemBranchPair { return fp[PillarMonth] }

// Day returns the day pillar. Its stem is the self reference (일간).
func (fp FourPillars) Day() StemBranchPair { return fp[PillarDay] }

// Hour returns the hour pillar.
func (fp FourPillars) Hour() StemBranchPair { return fp[PillarHour] }

// Self returns the day stem.
func (fp FourPillars) Self() Stem { return fp[PillarDay].Stem }

// CalendarDate is a date in either the solar or the lunar calendar.
// Leap only has meaning for lunar dates.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

func (d CalendarDate) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.Leap {
		s += " (leap)"
	}
	return s
}

// RawPair is a pillar as spelled by the oracle.
type RawPair struct {
	Stem   string
	Branch string
}

// RawPillars are the four pillars before translation into the tables.
type RawPillars [4]RawPair

// Oracle converts a date and hour into sexagenary symbols. Implementations
// must be deterministic and return an error wrapping ErrInvalidDate for dates
// they cannot place.
type Oracle interface {
	DateToStemBranch(date CalendarDate, hour int, isLunar bool) (RawPillars, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(date CalendarDate, hour int, isLunar bool) (RawPillars, error)

// DateToStemBranch calls f.
func (f OracleFunc) DateToStemBranch(date CalendarDate, hour int, isLunar bool) (RawPillars, error) {
	return f(date, hour, isLunar)
}

// BirthInput is what a caller supplies for an analysis.
type BirthInput struct {
	Date      CalendarDate
	TimeIndex int // 0-11, or TimeUnknown
	IsLunar   bool
}

// BirthInfo echoes the values actually passed to the oracle.
type BirthInfo struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	Day         int  `json:"day"`
	Hour        int  `json:"hour"`
	Minute      int  `json:"minute"`
	IsLunar     bool `json:"isLunar"`
	IsLeapMonth bool `json:"isLeapMonth"`
	TimeKnown   bool `json:"timeKnown"`
	TimeIndex   int  `json:"timeIndex"`
}

// SlotToHour converts a two-hour slot index into the hour passed to the oracle.
// Slot 0 maps to hour 0 rather than 23; every other slot maps to slot*2.
func SlotToHour(slot int) int {
	if slot == 0 {
		return 0
	}
	return slot * 2
}

// ResolveSlot substitutes DefaultTimeSlot for TimeUnknown and reports whether
// the time was known.
func ResolveSlot(timeIndex int) (slot int, known bool) {
	if timeIndex == TimeUnknown {
		return DefaultTimeSlot, false
	}
	return timeIndex, true
}

// Validate checks the shape of the input. Lunar day validity beyond 1..30 is
// left to the oracle.
func (in BirthInput) Validate() error {
	if in.TimeIndex != TimeUnknown && (in.TimeIndex < 0 || in.TimeIndex > MaxTimeSlot) {
		return fmt.Errorf("%w: %d", ErrInvalidTimeIndex, in.TimeIndex)
	}
	d := in.Date
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, d.Month)
	}
	if in.IsLunar {
		if d.Day < 1 || d.Day > 30 {
			return fmt.Errorf("%w: lunar day %d out of range", ErrInvalidDate, d.Day)
		}
		return nil
	}
	if d.Leap {
		return fmt.Errorf("%w: leap month is only valid for lunar dates", ErrInvalidDate)
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidDate, d)
	}
	return nil
}

// Mapper turns birth input into FourPillars using an Oracle.
type Mapper struct {
	oracle Oracle
}

// NewMapper creates a Mapper backed by oracle.
func NewMapper(oracle Oracle) *Mapper {
	return &Mapper{oracle: oracle}
}

// Map validates in, calls the oracle once and translates its symbols.
func (m *Mapper) Map(in BirthInput) (FourPillars, BirthInfo, error) {
	if err := in.Validate(); err != nil {
		return FourPillars{}, BirthInfo{}, err
	}

	slot, known := ResolveSlot(in.TimeIndex)
	hour := SlotToHour(slot)
	info := BirthInfo{
		Year:        in.Date.Year,
		Month:       in.Date.Month,
		Day:         in.Date.Day,
		Hour:        hour,
		Minute:      0,
		IsLunar:     in.IsLunar,
		IsLeapMonth: in.IsLunar && in.Date.Leap,
		TimeKnown:   known,
		TimeIndex:   slot,
	}

	raw, err := m.oracle.DateToStemBranch(in.Date, hour, in.IsLunar)
	if err != nil {
		return FourPillars{}, BirthInfo{}, fmt.Errorf("calendar lookup for %s: %w", in.Date, err)
	}

	pillars, err := Translate(raw)
	if err != nil {
		return FourPillars{}, BirthInfo{}, err
	}
	return pillars, info, nil
}

// Translate converts oracle symbols into table entries.
func Translate(raw RawPillars) (FourPillars, error) {
	var fp FourPillars
	for i, pair := range raw {
		stem, ok := LookupStem(pair.Stem)
		if !ok {
			return FourPillars{}, &TableDriftError{Pillar: Pillar(i), Kind: "stem", Symbol: pair.Stem}
		}
		branch, ok := LookupBranch(pair.Branch)
		if !ok {
			return FourPillars{}, &TableDriftError{Pillar: Pillar(i), Kind: "branch", Symbol: pair.Branch}
		}
		fp[i] = StemBranchPair{Stem: stem, Branch: branch}
	}
	return fp, nil
}
