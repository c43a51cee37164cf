// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package calendar

import (
	"errors"
	"testing"

	"github.com/tomtom215/mbtisaju/internal/saju"
)

func hanja(raw saju.RawPillars) [4]string {
	var out [4]string
	for i, p := range raw {
		out[i] = p.Stem + p.Branch
	}
	return out
}

func TestLunarOracle_KnownCharts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date saju.CalendarDate
		hour int
		want [4]string
	}{
		{
			name: "1990-05-15 noon",
			date: saju.CalendarDate{Year: 1990, Month: 5, Day: 15},
			hour: 12,
			want: [4]string{"庚午", "辛巳", "庚辰", "壬午"},
		},
		{
			// Before 立春: still the previous sexagenary year.
			name: "2000-01-01 noon",
			date: saju.CalendarDate{Year: 2000, Month: 1, Day: 1},
			hour: 12,
			want: [4]string{"己卯", "丙子", "戊午", "戊午"},
		},
	}

	o := NewLunarOracle()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := o.DateToStemBranch(tt.date, tt.hour, false)
			if err != nil {
				t.Fatalf("DateToStemBranch: %v", err)
			}
			if got := hanja(raw); got != tt.want {
				t.Errorf("pillars = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLunarOracle_SymbolsTranslate(t *testing.T) {
	t.Parallel()

	o := NewLunarOracle()
	// A spread of dates across the supported range and all twelve slots.
	dates := []saju.CalendarDate{
		{Year: 1900, Month: 3, Day: 1},
		{Year: 1955, Month: 8, Day: 31},
		{Year: 1988, Month: 2, Day: 4},
		{Year: 2024, Month: 12, Day: 31},
		{Year: 2100, Month: 6, Day: 15},
	}
	for _, d := range dates {
		for slot := 0; slot <= saju.MaxTimeSlot; slot++ {
			raw, err := o.DateToStemBranch(d, saju.SlotToHour(slot), false)
			if err != nil {
				t.Fatalf("DateToStemBranch(%s, slot %d): %v", d, slot, err)
			}
			if _, err := saju.Translate(raw); err != nil {
				t.Errorf("Translate(%v) for %s: %v", raw, d, err)
			}
		}
	}
}

func TestLunarOracle_LunarNewYear(t *testing.T) {
	t.Parallel()

	o := NewLunarOracle()
	lunarRaw, err := o.DateToStemBranch(saju.CalendarDate{Year: 2024, Month: 1, Day: 1}, 12, true)
	if err != nil {
		t.Fatalf("lunar: %v", err)
	}
	solarRaw, err := o.DateToStemBranch(saju.CalendarDate{Year: 2024, Month: 2, Day: 10}, 12, false)
	if err != nil {
		t.Fatalf("solar: %v", err)
	}
	if lunarRaw != solarRaw {
		t.Errorf("lunar 2024-01-01 = %v, solar 2024-02-10 = %v; want equal", hanja(lunarRaw), hanja(solarRaw))
	}
	if got := hanja(solarRaw)[saju.PillarDay]; got != "甲辰" {
		t.Errorf("2024-02-10 day pillar = %s, want 甲辰", got)
	}
}

func TestLunarOracle_LeapMonth(t *testing.T) {
	t.Parallel()

	o := NewLunarOracle()
	// 2020 has a leap fourth month.
	regular, err := o.DateToStemBranch(saju.CalendarDate{Year: 2020, Month: 4, Day: 10}, 12, true)
	if err != nil {
		t.Fatalf("regular month: %v", err)
	}
	leap, err := o.DateToStemBranch(saju.CalendarDate{Year: 2020, Month: 4, Day: 10, Leap: true}, 12, true)
	if err != nil {
		t.Fatalf("leap month: %v", err)
	}
	if regular[saju.PillarDay] == leap[saju.PillarDay] {
		t.Error("leap and regular month produced the same day pillar")
	}
}

func TestLunarOracle_InvalidDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		date    saju.CalendarDate
		isLunar bool
	}{
		{"solar february 30", saju.CalendarDate{Year: 1990, Month: 2, Day: 30}, false},
		{"solar april 31", saju.CalendarDate{Year: 2023, Month: 4, Day: 31}, false},
		{"year before range", saju.CalendarDate{Year: 1850, Month: 1, Day: 1}, false},
		{"year after range", saju.CalendarDate{Year: 2200, Month: 1, Day: 1}, false},
		{"solar with leap flag", saju.CalendarDate{Year: 1990, Month: 5, Day: 15, Leap: true}, false},
		{"lunar leap month missing", saju.CalendarDate{Year: 2021, Month: 4, Day: 10, Leap: true}, true},
	}

	o := NewLunarOracle()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := o.DateToStemBranch(tt.date, 12, tt.isLunar)
			if !errors.Is(err, saju.ErrInvalidDate) {
				t.Errorf("DateToStemBranch(%s) error = %v, want ErrInvalidDate", tt.date, err)
			}
		})
	}
}

func TestLunarOracle_Deterministic(t *testing.T) {
	t.Parallel()

	o := NewLunarOracle()
	d := saju.CalendarDate{Year: 1984, Month: 7, Day: 7}
	first, err := o.DateToStemBranch(d, 8, false)
	if err != nil {
		t.Fatalf("DateToStemBranch: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := o.DateToStemBranch(d, 8, false)
		if err != nil {
			t.Fatalf("DateToStemBranch: %v", err)
		}
		if again != first {
			t.Fatalf("call %d = %v, want %v", i, again, first)
		}
	}
}

func TestAnalyzer_WithLunarOracle(t *testing.T) {
	t.Parallel()

	a := saju.NewAnalyzer(NewLunarOracle())
	date := saju.CalendarDate{Year: 1990, Month: 5, Day: 15}

	unknown, err := a.Analyze(saju.BirthInput{Date: date, TimeIndex: saju.TimeUnknown})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	noon, err := a.Analyze(saju.BirthInput{Date: date, TimeIndex: 6})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if unknown.BirthInfo.Hour != 12 {
		t.Errorf("birthInfo.hour = %d, want 12", unknown.BirthInfo.Hour)
	}
	if unknown.Palja.Day != noon.Palja.Day {
		t.Errorf("day pillar unknown %v != noon %v", unknown.Palja.Day, noon.Palja.Day)
	}
	if unknown.Ohaeng.Total() != 8 || unknown.Sibsin.Total() != 4 {
		t.Errorf("totals = %d/%d, want 8/4", unknown.Ohaeng.Total(), unknown.Sibsin.Total())
	}
	if unknown.PrimarySibsin.Label != saju.Pyeongwan {
		t.Errorf("primary = %v, want 편관", unknown.PrimarySibsin.Label)
	}
}
