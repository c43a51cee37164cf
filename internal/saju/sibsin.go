// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Relation is how another element stands to the self element.
type Relation int

const (
	RelIdentical     Relation = iota // same element
	RelSelfGenerates                 // self feeds other
	RelSelfRestrains                 // self controls other
	RelRestrainsSelf                 // other controls self
	RelGeneratesSelf                 // other feeds self
)

var relationNames = [...]string{"identical", "self-generates", "self-restrains", "restrains-self", "generates-self"}

func (r Relation) String() string {
	if r < RelIdentical || r > RelGeneratesSelf {
		return fmt.Sprintf("Relation(%d)", int(r))
	}
	return relationNames[r]
}

// RelationBetween classifies other relative to self. Every ordered pair of
// valid elements falls in exactly one class.
func RelationBetween(self, other Element) Relation {
	switch other {
	case self:
		return RelIdentical
	case self.Generates():
		return RelSelfGenerates
	case self.Restrains():
		return RelSelfRestrains
	}
	if other.Restrains() == self {
		return RelRestrainsSelf
	}
	return RelGeneratesSelf
}

// Sibsin is one of the ten relational labels (십신). The constant order is
// the canonical scan order.
type Sibsin int

const (
	Bigyeon   Sibsin = iota // 비견: same element, same polarity
	Geopjae                 // 겁재: same element, opposite polarity
	Siksin                  // 식신: self generates, same polarity
	Sanggwan                // 상관: self generates, opposite polarity
	Pyeonjae                // 편재: self restrains, same polarity
	Jeongjae                // 정재: self restrains, opposite polarity
	Pyeongwan               // 편관: restrains self, same polarity
	Jeonggwan               // 정관: restrains self, opposite polarity
	Pyeonin                 // 편인: generates self, same polarity
	Jeongin                 // 정인: generates self, opposite polarity
)

const sibsinCount = 10

// SibsinOrder lists the labels in canonical scan order.
var SibsinOrder = [sibsinCount]Sibsin{
	Bigyeon, Geopjae, Siksin, Sanggwan, Pyeonjae,
	Jeongjae, Pyeongwan, Jeonggwan, Pyeonin, Jeongin,
}

type sibsinInfo struct {
	korean   string
	hanja    string
	code     string
	priority int
	meaning  string
}

// sibsinTable holds the fixed names, tie-break priorities and meanings.
// Lower priority wins ties: output and resource labels rank ahead of wealth
// and officer labels, and the peer labels rank last.
var sibsinTable = [sibsinCount]sibsinInfo{
	Bigyeon:   {korean: "비견", hanja: "比肩", code: "bigyeon", priority: 9, meaning: "자립심과 주체성이 강하고 스스로 길을 개척하는 기운입니다."},
	Geopjae:   {korean: "겁재", hanja: "劫財", code: "geopjae", priority: 10, meaning: "경쟁심과 추진력이 강하며 승부욕이 두드러지는 기운입니다."},
	Siksin:    {korean: "식신", hanja: "食神", code: "siksin", priority: 1, meaning: "표현력과 여유가 있고 먹을 복과 재능을 타고난 기운입니다."},
	Sanggwan:  {korean: "상관", hanja: "傷官", code: "sanggwan", priority: 2, meaning: "창의성과 말재주가 뛰어나며 틀을 깨는 변화를 추구하는 기운입니다."},
	Pyeonjae:  {korean: "편재", hanja: "偏財", code: "pyeonjae", priority: 6, meaning: "활동적이고 사교적이며 큰 재물을 움직이는 기운입니다."},
	Jeongjae:  {korean: "정재", hanja: "正財", code: "jeongjae", priority: 5, meaning: "성실하고 꼼꼼하며 안정적으로 재물을 모으는 기운입니다."},
	Pyeongwan: {korean: "편관", hanja: "偏官", code: "pyeongwan", priority: 8, meaning: "카리스마와 결단력이 있고 어려움에 맞서는 기운입니다."},
	Jeonggwan: {korean: "정관", hanja: "正官", code: "jeonggwan", priority: 7, meaning: "책임감과 명예를 중시하며 원칙을 지키는 기운입니다."},
	Pyeonin:   {korean: "편인", hanja: "偏印", code: "pyeonin", priority: 4, meaning: "직관력과 독창성이 뛰어나고 특별한 분야에 몰입하는 기운입니다."},
	Jeongin:   {korean: "정인", hanja: "正印", code: "jeongin", priority: 3, meaning: "학문과 배움을 좋아하고 주변의 도움을 받는 인덕의 기운입니다."},
}

// siblingLabels maps a relation to its (same polarity, opposite polarity) labels.
var siblingLabels = [...][2]Sibsin{
	RelIdentical:     {Bigyeon, Geopjae},
	RelSelfGenerates: {Siksin, Sanggwan},
	RelSelfRestrains: {Pyeonjae, Jeongjae},
	RelRestrainsSelf: {Pyeongwan, Jeonggwan},
	RelGeneratesSelf: {Pyeonin, Jeongin},
}

// Valid reports whether s is one of the ten labels.
func (s Sibsin) Valid() bool { return s >= Bigyeon && s <= Jeongin }

// Korean returns the hangul label, e.g. "식신".
func (s Sibsin) Korean() string { return sibsinTable[s].korean }

// Hanja returns the label in Chinese characters.
func (s Sibsin) Hanja() string { return sibsinTable[s].hanja }

// Code returns the romanized identifier used in URLs and storage.
func (s Sibsin) Code() string { return sibsinTable[s].code }

// Priority is the tie-break rank; lower wins.
func (s Sibsin) Priority() int { return sibsinTable[s].priority }

// Meaning returns the static interpretation sentence.
func (s Sibsin) Meaning() string { return sibsinTable[s].meaning }

func (s Sibsin) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sibsin(%d)", int(s))
	}
	return sibsinTable[s].korean
}

// MarshalJSON encodes the label as its hangul name.
func (s Sibsin) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("saju: cannot encode invalid sibsin %d", int(s))
	}
	return json.Marshal(s.Korean())
}

// UnmarshalJSON accepts the hangul name or the romanized code.
func (s *Sibsin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSibsin(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSibsin resolves a hangul label, hanja label or romanized code.
func ParseSibsin(name string) (Sibsin, error) {
	for _, s := range SibsinOrder {
		info := sibsinTable[s]
		if name == info.korean || name == info.hanja || name == info.code {
			return s, nil
		}
	}
	return 0, fmt.Errorf("saju: unknown sibsin %q", name)
}

// ClassifySibsin labels a symbol with the given element and polarity relative
// to the self stem.
func ClassifySibsin(self Stem, element Element, polarity Polarity) Sibsin {
	pair := siblingLabels[RelationBetween(self.Element(), element)]
	if polarity == self.Polarity() {
		return pair[0]
	}
	return pair[1]
}

// SibsinCount is a label census, indexed by Sibsin.
type SibsinCount [sibsinCount]int

// CountSibsin classifies the four branches, including the day branch,
// against the day stem. The total is always four.
func CountSibsin(fp FourPillars) SibsinCount {
	var c SibsinCount
	self := fp.Self()
	for _, p := range fp {
		c[ClassifySibsin(self, p.Branch.Element(), p.Branch.Polarity())]++
	}
	return c
}

// StemSibsin labels the year, month and hour stems against the day stem.
// The day stem itself is omitted.
func StemSibsin(fp FourPillars) map[Pillar]Sibsin {
	self := fp.Self()
	out := make(map[Pillar]Sibsin, 3)
	for _, pillar := range []Pillar{PillarYear, PillarMonth, PillarHour} {
		stem := fp[pillar].Stem
		out[pillar] = ClassifySibsin(self, stem.Element(), stem.Polarity())
	}
	return out
}

// Get returns the count for s.
func (c SibsinCount) Get(s Sibsin) int { return c[s] }

// Total sums all ten counts.
func (c SibsinCount) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

type sibsinCountJSON struct {
	Bigyeon   int `json:"비견"`
	Geopjae   int `json:"겁재"`
	Siksin    int `json:"식신"`
	Sanggwan  int `json:"상관"`
	Pyeonjae  int `json:"편재"`
	Jeongjae  int `json:"정재"`
	Pyeongwan int `json:"편관"`
	Jeonggwan int `json:"정관"`
	Pyeonin   int `json:"편인"`
	Jeongin   int `json:"정인"`
}

// MarshalJSON encodes all ten labels in canonical order, zeros included.
func (c SibsinCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(sibsinCountJSON{
		Bigyeon: c[Bigyeon], Geopjae: c[Geopjae],
		Siksin: c[Siksin], Sanggwan: c[Sanggwan],
		Pyeonjae: c[Pyeonjae], Jeongjae: c[Jeongjae],
		Pyeongwan: c[Pyeongwan], Jeonggwan: c[Jeonggwan],
		Pyeonin: c[Pyeonin], Jeongin: c[Jeongin],
	})
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (c *SibsinCount) UnmarshalJSON(data []byte) error {
	var v sibsinCountJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = SibsinCount{
		Bigyeon: v.Bigyeon, Geopjae: v.Geopjae,
		Siksin: v.Siksin, Sanggwan: v.Sanggwan,
		Pyeonjae: v.Pyeonjae, Jeongjae: v.Jeongjae,
		Pyeongwan: v.Pyeongwan, Jeonggwan: v.Jeonggwan,
		Pyeonin: v.Pyeonin, Jeongin: v.Jeongin,
	}
	return nil
}
