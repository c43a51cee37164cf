// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package calendar adapts github.com/6tail/lunar-go to the saju.Oracle
// interface.
//
// lunar-go computes the eight characters (팔자) with solar-term month
// boundaries and a 立春 year boundary. It reports stems and branches as
// Chinese characters, which the saju tables resolve directly.
package calendar

import (
	"fmt"
	"time"

	lunar "github.com/6tail/lunar-go/calendar"

	"github.com/tomtom215/mbtisaju/internal/saju"
)

const (
	// MinYear and MaxYear bound the supported birth years.
	MinYear = 1900
	MaxYear = 2100
)

// LunarOracle implements saju.Oracle. It holds no state and is safe for
// concurrent use.
type LunarOracle struct{}

// NewLunarOracle returns a LunarOracle.
func NewLunarOracle() *LunarOracle {
	return &LunarOracle{}
}

var _ saju.Oracle = (*LunarOracle)(nil)

// DateToStemBranch resolves date at hour:00 into raw pillars. Lunar leap
// months are passed to lunar-go as negative months. Dates that do not exist
// return an error wrapping saju.ErrInvalidDate.
func (o *LunarOracle) DateToStemBranch(date saju.CalendarDate, hour int, isLunar bool) (raw saju.RawPillars, err error) {
	if date.Year < MinYear || date.Year > MaxYear {
		return saju.RawPillars{}, fmt.Errorf("%w: year %d outside %d-%d", saju.ErrInvalidDate, date.Year, MinYear, MaxYear)
	}
	if hour < 0 || hour > 23 {
		return saju.RawPillars{}, fmt.Errorf("%w: hour %d", saju.ErrInvalidTimeIndex, hour)
	}

	// lunar-go panics on some impossible lunar dates (e.g. a leap month the
	// year does not have).
	defer func() {
		if r := recover(); r != nil {
			raw = saju.RawPillars{}
			err = fmt.Errorf("%w: %s: %v", saju.ErrInvalidDate, date, r)
		}
	}()

	var l *lunar.Lunar
	if isLunar {
		l, err = lunarDate(date, hour)
	} else {
		l, err = solarDate(date, hour)
	}
	if err != nil {
		return saju.RawPillars{}, err
	}

	ec := l.GetEightChar()
	return saju.RawPillars{
		{Stem: ec.GetYearGan(), Branch: ec.GetYearZhi()},
		{Stem: ec.GetMonthGan(), Branch: ec.GetMonthZhi()},
		{Stem: ec.GetDayGan(), Branch: ec.GetDayZhi()},
		{Stem: ec.GetTimeGan(), Branch: ec.GetTimeZhi()},
	}, nil
}

func solarDate(date saju.CalendarDate, hour int) (*lunar.Lunar, error) {
	if date.Leap {
		return nil, fmt.Errorf("%w: leap flag on solar date %s", saju.ErrInvalidDate, date)
	}
	t := time.Date(date.Year, time.Month(date.Month), date.Day, hour, 0, 0, 0, time.UTC)
	if t.Year() != date.Year || int(t.Month()) != date.Month || t.Day() != date.Day {
		return nil, fmt.Errorf("%w: %s does not exist", saju.ErrInvalidDate, date)
	}
	return lunar.NewSolar(date.Year, date.Month, date.Day, hour, 0, 0).GetLunar(), nil
}

func lunarDate(date saju.CalendarDate, hour int) (*lunar.Lunar, error) {
	month := date.Month
	if date.Leap {
		month = -month
	}
	l := lunar.NewLunar(date.Year, month, date.Day, hour, 0, 0)

	// Round-trip through the solar calendar to reject day 30 of a short
	// month and leap months that do not exist.
	back := l.GetSolar().GetLunar()
	if back.GetYear() != date.Year || back.GetMonth() != month || back.GetDay() != date.Day {
		return nil, fmt.Errorf("%w: lunar %s does not exist", saju.ErrInvalidDate, date)
	}
	return back, nil
}
