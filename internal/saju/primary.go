// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import "fmt"

// PrimaryRelation is the dominant sibsin label of a chart.
type PrimaryRelation struct {
	Label       Sibsin `json:"label"`
	Hanja       string `json:"hanja"`
	Count       int    `json:"count"`
	Meaning     string `json:"meaning"`
	Description string `json:"description"`

	// Fallback is set when no label had a positive count and the label was
	// derived from the self element's strength instead.
	Fallback bool `json:"fallback,omitempty"`
}

// SelectPrimary picks the label with the highest count. Exact ties go to the
// lower Priority value, independent of scan order.
//
// When every count is zero the label is derived from the self element: a
// strong self (more than a fifth of all symbols) drains into an output label,
// a weak self draws on a resource label, and polarity picks within the pair.
// CountSibsin always yields four labels, so Analyze never reaches this path.
func SelectPrimary(counts SibsinCount, elements ElementCount, self Stem) PrimaryRelation {
	best := Sibsin(-1)
	for _, s := range SibsinOrder {
		n := counts[s]
		if n <= 0 {
			continue
		}
		if best < 0 || n > counts[best] || (n == counts[best] && s.Priority() < best.Priority()) {
			best = s
		}
	}

	if best >= 0 {
		return newPrimary(best, counts[best], false)
	}

	strong := elements.Get(self.Element())*elementCount > elements.Total()
	var label Sibsin
	switch {
	case strong && self.Polarity() == Yang:
		label = Siksin
	case strong:
		label = Sanggwan
	case self.Polarity() == Yang:
		label = Pyeonin
	default:
		label = Jeongin
	}
	return newPrimary(label, 0, true)
}

func newPrimary(label Sibsin, count int, fallback bool) PrimaryRelation {
	return PrimaryRelation{
		Label:       label,
		Hanja:       label.Hanja(),
		Count:       count,
		Meaning:     label.Meaning(),
		Description: describe(label, count, fallback),
		Fallback:    fallback,
	}
}

func describe(label Sibsin, count int, fallback bool) string {
	name := fmt.Sprintf("%s(%s)", label.Korean(), label.Hanja())
	if fallback {
		return fmt.Sprintf("%s의 기운이 중심이 됩니다. %s", name, label.Meaning())
	}
	return fmt.Sprintf("%s%s %d개로 가장 두드러집니다. %s",
		name, subjectParticle(label.Korean()), count, label.Meaning())
}

// subjectParticle returns 이 after a final consonant and 가 otherwise.
func subjectParticle(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return "가"
	}
	last := runes[len(runes)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return "가"
	}
	if (last-0xAC00)%28 != 0 {
		return "이"
	}
	return "가"
}
