// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import "fmt"

// SymbolView is a stem or branch as rendered to callers.
type SymbolView struct {
	Hangul   string   `json:"hangul"`
	Hanja    string   `json:"hanja"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"polarity"`
}

// PillarView is one pillar as rendered to callers.
type PillarView struct {
	Hangul string     `json:"hangul"`
	Hanja  string     `json:"hanja"`
	Stem   SymbolView `json:"stem"`
	Branch SymbolView `json:"branch"`
}

// Palja holds the rendered four pillars (팔자).
type Palja struct {
	Year  PillarView `json:"year"`
	Month PillarView `json:"month"`
	Day   PillarView `json:"day"`
	Hour  PillarView `json:"hour"`
}

// Result is the full output of one analysis.
type Result struct {
	Palja         Palja           `json:"palja"`
	Ilgan         SymbolView      `json:"ilgan"`
	Ohaeng        ElementCount    `json:"ohaeng"`
	Sibsin        SibsinCount     `json:"sibsin"`
	PrimarySibsin PrimaryRelation `json:"primarySibsin"`
	BirthInfo     BirthInfo       `json:"birthInfo"`
}

// StemView renders a stem.
func StemView(s Stem) SymbolView {
	return SymbolView{Hangul: s.Hangul(), Hanja: s.Hanja(), Element: s.Element(), Polarity: s.Polarity()}
}

// BranchView renders a branch.
func BranchView(b Branch) SymbolView {
	return SymbolView{Hangul: b.Hangul(), Hanja: b.Hanja(), Element: b.Element(), Polarity: b.Polarity()}
}

func pillarView(p StemBranchPair) PillarView {
	return PillarView{
		Hangul: p.String(),
		Hanja:  p.Hanja(),
		Stem:   StemView(p.Stem),
		Branch: BranchView(p.Branch),
	}
}

// NewResult runs tabulation, classification and selection over fp.
func NewResult(fp FourPillars, info BirthInfo) *Result {
	elements := TabulateElements(fp)
	counts := CountSibsin(fp)
	return &Result{
		Palja: Palja{
			Year:  pillarView(fp.Year()),
			Month: pillarView(fp.Month()),
			Day:   pillarView(fp.Day()),
			Hour:  pillarView(fp.Hour()),
		},
		Ilgan:         StemView(fp.Self()),
		Ohaeng:        elements,
		Sibsin:        counts,
		PrimarySibsin: SelectPrimary(counts, elements, fp.Self()),
		BirthInfo:     info,
	}
}

// FourPillars rebuilds the pillar values from the rendered palja, for results
// that were decoded from storage.
func (r *Result) FourPillars() (FourPillars, error) {
	views := [4]PillarView{r.Palja.Year, r.Palja.Month, r.Palja.Day, r.Palja.Hour}
	var raw RawPillars
	for i, v := range views {
		raw[i] = RawPair{Stem: v.Stem.Hanja, Branch: v.Branch.Hanja}
	}
	fp, err := Translate(raw)
	if err != nil {
		return FourPillars{}, fmt.Errorf("decode stored palja: %w", err)
	}
	return fp, nil
}

// Analyzer runs the whole pipeline for a birth input.
type Analyzer struct {
	mapper *Mapper
}

// NewAnalyzer creates an Analyzer backed by oracle.
func NewAnalyzer(oracle Oracle) *Analyzer {
	return &Analyzer{mapper: NewMapper(oracle)}
}

// Analyze maps in to pillars and derives every output. It either fully
// succeeds or returns an error; there are no partial results.
func (a *Analyzer) Analyze(in BirthInput) (*Result, error) {
	fp, info, err := a.mapper.Map(in)
	if err != nil {
		return nil, err
	}
	return NewResult(fp, info), nil
}
