// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Element is one of the five phases (오행).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// elementCount is the number of elements; ElementCount is sized by it.
const elementCount = 5

// Elements lists the five elements in generative order.
var Elements = [elementCount]Element{Wood, Fire, Earth, Metal, Water}

type elementInfo struct {
	code   string
	korean string
	hanja  string
}

var elementTable = [elementCount]elementInfo{
	Wood:  {code: "wood", korean: "목", hanja: "木"},
	Fire:  {code: "fire", korean: "화", hanja: "火"},
	Earth: {code: "earth", korean: "토", hanja: "土"},
	Metal: {code: "metal", korean: "금", hanja: "金"},
	Water: {code: "water", korean: "수", hanja: "水"},
}

// generates maps each element to the element it feeds (상생).
var generates = [elementCount]Element{
	Wood:  Fire,
	Fire:  Earth,
	Earth: Metal,
	Metal: Water,
	Water: Wood,
}

// restrains maps each element to the element it controls (상극).
var restrains = [elementCount]Element{
	Wood:  Earth,
	Earth: Water,
	Water: Fire,
	Fire:  Metal,
	Metal: Wood,
}

// Valid reports whether e is one of the five canonical elements.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

// String returns the canonical lowercase code, e.g. "wood".
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementTable[e].code
}

// Korean returns the hangul name, e.g. "목".
func (e Element) Korean() string {
	if !e.Valid() {
		return ""
	}
	return elementTable[e].korean
}

// Hanja returns the Chinese character, e.g. "木".
func (e Element) Hanja() string {
	if !e.Valid() {
		return ""
	}
	return elementTable[e].hanja
}

// Generates returns the element that e produces.
func (e Element) Generates() Element {
	return generates[e]
}

// Restrains returns the element that e controls.
func (e Element) Restrains() Element {
	return restrains[e]
}

// MarshalJSON encodes the element as its canonical code.
func (e Element) MarshalJSON() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("saju: cannot encode invalid element %d", int(e))
	}
	return json.Marshal(e.String())
}

// UnmarshalJSON accepts a canonical code.
func (e *Element) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseElement(code)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseElement resolves a canonical code, hangul name or hanja to an Element.
func ParseElement(s string) (Element, error) {
	for _, e := range Elements {
		info := elementTable[e]
		if s == info.code || s == info.korean || s == info.hanja {
			return e, nil
		}
	}
	return 0, fmt.Errorf("saju: unknown element %q", s)
}

// Polarity is yin or yang (음양).
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

// Valid reports whether p is yin or yang.
func (p Polarity) Valid() bool {
	return p == Yang || p == Yin
}

// String returns "yang" or "yin".
func (p Polarity) String() string {
	switch p {
	case Yang:
		return "yang"
	case Yin:
		return "yin"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// Korean returns "양" or "음".
func (p Polarity) Korean() string {
	switch p {
	case Yang:
		return "양"
	case Yin:
		return "음"
	default:
		return ""
	}
}

// MarshalJSON encodes the polarity as "yang" or "yin".
func (p Polarity) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("saju: cannot encode invalid polarity %d", int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts "yang" or "yin".
func (p *Polarity) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	switch code {
	case "yang":
		*p = Yang
	case "yin":
		*p = Yin
	default:
		return fmt.Errorf("saju: unknown polarity %q", code)
	}
	return nil
}
