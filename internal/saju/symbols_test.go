// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestStemTable_LookupRoundTrip(t *testing.T) {
	t.Parallel()

	if got := len(Stems()); got != 10 {
		t.Fatalf("Stems() len = %d, want 10", got)
	}
	for _, s := range Stems() {
		byHanja, ok := LookupStem(s.Hanja())
		if !ok || byHanja != s {
			t.Errorf("LookupStem(%q) = %v, %v; want %v", s.Hanja(), byHanja, ok, s)
		}
		byHangul, ok := LookupStem(s.Hangul())
		if !ok || byHangul != s {
			t.Errorf("LookupStem(%q) = %v, %v; want %v", s.Hangul(), byHangul, ok, s)
		}
		if !s.Element().Valid() || !s.Polarity().Valid() {
			t.Errorf("stem %v has non-canonical tags %v/%v", s, s.Element(), s.Polarity())
		}
	}
}

func TestBranchTable_LookupRoundTrip(t *testing.T) {
	t.Parallel()

	if got := len(Branches()); got != 12 {
		t.Fatalf("Branches() len = %d, want 12", got)
	}
	for _, b := range Branches() {
		byHanja, ok := LookupBranch(b.Hanja())
		if !ok || byHanja != b {
			t.Errorf("LookupBranch(%q) = %v, %v; want %v", b.Hanja(), byHanja, ok, b)
		}
		byHangul, ok := LookupBranch(b.Hangul())
		if !ok || byHangul != b {
			t.Errorf("LookupBranch(%q) = %v, %v; want %v", b.Hangul(), byHangul, ok, b)
		}
		if !b.Element().Valid() || !b.Polarity().Valid() {
			t.Errorf("branch %v has non-canonical tags %v/%v", b, b.Element(), b.Polarity())
		}
	}
}

func TestStemTable_PolarityAlternates(t *testing.T) {
	t.Parallel()

	for _, s := range Stems() {
		want := Yang
		if int(s)%2 == 1 {
			want = Yin
		}
		if s.Polarity() != want {
			t.Errorf("%v polarity = %v, want %v", s, s.Polarity(), want)
		}
		if s.Element() != Elements[int(s)/2] {
			t.Errorf("%v element = %v, want %v", s, s.Element(), Elements[int(s)/2])
		}
	}
}

func TestBranchTable_ElementCensus(t *testing.T) {
	t.Parallel()

	// Four earth branches, two of each other element.
	want := map[Element]int{Wood: 2, Fire: 2, Earth: 4, Metal: 2, Water: 2}
	got := make(map[Element]int)
	for _, b := range Branches() {
		got[b.Element()]++
	}
	for e, n := range want {
		if got[e] != n {
			t.Errorf("branches with element %v = %d, want %d", e, got[e], n)
		}
	}
}

func TestSharedHangulReading(t *testing.T) {
	t.Parallel()

	stem, ok := LookupStem("신")
	if !ok || stem.Hanja() != "辛" {
		t.Errorf("LookupStem(신) = %v, want 辛", stem)
	}
	branch, ok := LookupBranch("신")
	if !ok || branch.Hanja() != "申" {
		t.Errorf("LookupBranch(신) = %v, want 申", branch)
	}
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	for _, sym := range []string{"", "X", "甲子", "子"} {
		if _, ok := LookupStem(sym); ok {
			t.Errorf("LookupStem(%q) unexpectedly succeeded", sym)
		}
	}
	for _, sym := range []string{"", "Y", "甲"} {
		if _, ok := LookupBranch(sym); ok {
			t.Errorf("LookupBranch(%q) unexpectedly succeeded", sym)
		}
	}
}

func TestElementCycles(t *testing.T) {
	t.Parallel()

	// Generating five times returns to the start, visiting every element.
	for _, start := range Elements {
		seen := make(map[Element]bool)
		e := start
		for i := 0; i < 5; i++ {
			seen[e] = true
			e = e.Generates()
		}
		if e != start || len(seen) != 5 {
			t.Errorf("generative cycle from %v is not a 5-cycle", start)
		}
	}

	// Each element controls the element two steps ahead in the generative cycle.
	for _, e := range Elements {
		if got, want := e.Restrains(), e.Generates().Generates(); got != want {
			t.Errorf("%v restrains %v, want %v", e, got, want)
		}
	}
}

func TestParseElement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Element
	}{
		{"wood", Wood},
		{"화", Fire},
		{"土", Earth},
		{"metal", Metal},
		{"수", Water},
	}
	for _, tt := range tests {
		got, err := ParseElement(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseElement(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseElement("aether"); err == nil {
		t.Error("ParseElement(aether) expected error")
	}
}

func TestElementPolarity_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(StemView(Stem(7)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"hangul":"신","hanja":"辛","element":"metal","polarity":"yin"}`
	if string(data) != want {
		t.Errorf("StemView JSON = %s, want %s", data, want)
	}

	var back SymbolView
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Element != Metal || back.Polarity != Yin {
		t.Errorf("decoded tags = %v/%v, want metal/yin", back.Element, back.Polarity)
	}

	if _, err := json.Marshal(Element(9)); err == nil {
		t.Error("marshal of invalid element expected error")
	}
}
