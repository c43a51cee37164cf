// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"fmt"
	"sync"
)

// hourPair derives the hour pillar from the day stem and hour using the
// standard five-rat rule, so stub oracles react to the time slot.
func hourPair(dayStem Stem, hour int) RawPair {
	branch := ((hour + 1) / 2) % branchCount
	start := (int(dayStem) % 5) * 2
	stem := (start + branch) % stemCount
	return RawPair{Stem: stemTable[stem].hanja, Branch: branchTable[branch].hanja}
}

// recordingOracle returns fixed year, month and day pillars and records the
// hours it was asked for.
type recordingOracle struct {
	mu    sync.Mutex
	year  RawPair
	month RawPair
	day   RawPair
	hours []int
	err   error
}

// newOracle1990 mirrors the chart of 1990-05-15: 庚午 辛巳 庚辰.
func newOracle1990() *recordingOracle {
	return &recordingOracle{
		year:  RawPair{Stem: "庚", Branch: "午"},
		month: RawPair{Stem: "辛", Branch: "巳"},
		day:   RawPair{Stem: "庚", Branch: "辰"},
	}
}

func (o *recordingOracle) DateToStemBranch(_ CalendarDate, hour int, _ bool) (RawPillars, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hours = append(o.hours, hour)
	if o.err != nil {
		return RawPillars{}, o.err
	}
	day, ok := LookupStem(o.day.Stem)
	if !ok {
		return RawPillars{}, fmt.Errorf("stub: bad day stem %q", o.day.Stem)
	}
	return RawPillars{o.year, o.month, o.day, hourPair(day, hour)}, nil
}

func (o *recordingOracle) lastHour() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.hours) == 0 {
		return -1
	}
	return o.hours[len(o.hours)-1]
}

// pillars builds FourPillars from hanja pairs such as "庚午".
func pillars(pairs ...string) FourPillars {
	var raw RawPillars
	for i, p := range pairs {
		r := []rune(p)
		raw[i] = RawPair{Stem: string(r[0]), Branch: string(r[1])}
	}
	fp, err := Translate(raw)
	if err != nil {
		panic(err)
	}
	return fp
}
