// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import "fmt"

// Stem is one of the ten heavenly stems (천간).
type Stem int

// Branch is one of the twelve earthly branches (지지).
type Branch int

const (
	stemCount   = 10
	branchCount = 12
)

// symbolInfo carries the fixed correspondences of a single stem or branch.
type symbolInfo struct {
	hangul   string
	hanja    string
	element  Element
	polarity Polarity
}

// stemTable is indexed by Stem: 갑 을 병 정 무 기 경 신 임 계.
var stemTable = [stemCount]symbolInfo{
	{hangul: "갑", hanja: "甲", element: Wood, polarity: Yang},
	{hangul: "을", hanja: "乙", element: Wood, polarity: Yin},
	{hangul: "병", hanja: "丙", element: Fire, polarity: Yang},
	{hangul: "정", hanja: "丁", element: Fire, polarity: Yin},
	{hangul: "무", hanja: "戊", element: Earth, polarity: Yang},
	{hangul: "기", hanja: "己", element: Earth, polarity: Yin},
	{hangul: "경", hanja: "庚", element: Metal, polarity: Yang},
	{hangul: "신", hanja: "辛", element: Metal, polarity: Yin},
	{hangul: "임", hanja: "壬", element: Water, polarity: Yang},
	{hangul: "계", hanja: "癸", element: Water, polarity: Yin},
}

// branchTable is indexed by Branch: 자 축 인 묘 진 사 오 미 신 유 술 해.
// Polarity follows the branch's position in the cycle.
var branchTable = [branchCount]symbolInfo{
	{hangul: "자", hanja: "子", element: Water, polarity: Yang},
	{hangul: "축", hanja: "丑", element: Earth, polarity: Yin},
	{hangul: "인", hanja: "寅", element: Wood, polarity: Yang},
	{hangul: "묘", hanja: "卯", element: Wood, polarity: Yin},
	{hangul: "진", hanja: "辰", element: Earth, polarity: Yang},
	{hangul: "사", hanja: "巳", element: Fire, polarity: Yin},
	{hangul: "오", hanja: "午", element: Fire, polarity: Yang},
	{hangul: "미", hanja: "未", element: Earth, polarity: Yin},
	{hangul: "신", hanja: "申", element: Metal, polarity: Yang},
	{hangul: "유", hanja: "酉", element: Metal, polarity: Yin},
	{hangul: "술", hanja: "戌", element: Earth, polarity: Yang},
	{hangul: "해", hanja: "亥", element: Water, polarity: Yin},
}

// stemBySymbol and branchBySymbol index both hangul and hanja spellings.
// Stem 신(辛) and branch 신(申) share a hangul reading, so the maps are kept apart.
var (
	stemBySymbol   = indexSymbols(stemTable[:])
	branchBySymbol = indexSymbols(branchTable[:])
)

func indexSymbols(table []symbolInfo) map[string]int {
	m := make(map[string]int, len(table)*2)
	for i, info := range table {
		m[info.hangul] = i
		m[info.hanja] = i
	}
	return m
}

// LookupStem resolves a hangul or hanja stem symbol.
func LookupStem(symbol string) (Stem, bool) {
	i, ok := stemBySymbol[symbol]
	return Stem(i), ok
}

// LookupBranch resolves a hangul or hanja branch symbol.
func LookupBranch(symbol string) (Branch, bool) {
	i, ok := branchBySymbol[symbol]
	return Branch(i), ok
}

// Stems returns all ten stems in cycle order.
func Stems() []Stem {
	out := make([]Stem, stemCount)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Branches returns all twelve branches in cycle order.
func Branches() []Branch {
	out := make([]Branch, branchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Valid reports whether s indexes the stem table.
func (s Stem) Valid() bool { return s >= 0 && s < stemCount }

// Hangul returns the Korean reading, e.g. "갑".
func (s Stem) Hangul() string { return stemTable[s].hangul }

// Hanja returns the Chinese character, e.g. "甲".
func (s Stem) Hanja() string { return stemTable[s].hanja }

// Element returns the stem's element.
func (s Stem) Element() Element { return stemTable[s].element }

// Polarity returns the stem's yin/yang polarity.
func (s Stem) Polarity() Polarity { return stemTable[s].polarity }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemTable[s].hangul + "(" + stemTable[s].hanja + ")"
}

// Valid reports whether b indexes the branch table.
func (b Branch) Valid() bool { return b >= 0 && b < branchCount }

// Hangul returns the Korean reading, e.g. "자".
func (b Branch) Hangul() string { return branchTable[b].hangul }

// Hanja returns the Chinese character, e.g. "子".
func (b Branch) Hanja() string { return branchTable[b].hanja }

// Element returns the branch's element.
func (b Branch) Element() Element { return branchTable[b].element }

// Polarity returns the branch's yin/yang polarity.
func (b Branch) Polarity() Polarity { return branchTable[b].polarity }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchTable[b].hangul + "(" + branchTable[b].hanja + ")"
}
