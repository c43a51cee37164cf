// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package saju

import "github.com/goccy/go-json"

// SymbolsPerChart is the number of stems and branches in a chart.
const SymbolsPerChart = 8

// ElementCount is a census of elements, indexed by Element.
type ElementCount [elementCount]int

// TabulateElements counts the element of every stem and branch. Each symbol
// contributes exactly one, so the total is always SymbolsPerChart.
func TabulateElements(fp FourPillars) ElementCount {
	var c ElementCount
	for _, p := range fp {
		c[p.Stem.Element()]++
		c[p.Branch.Element()]++
	}
	return c
}

// Get returns the count for e.
func (c ElementCount) Get(e Element) int {
	return c[e]
}

// Total sums all five counts.
func (c ElementCount) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Dominant returns the most frequent element. Ties go to the element that
// comes first in generative order.
func (c ElementCount) Dominant() Element {
	best := Wood
	for _, e := range Elements {
		if c[e] > c[best] {
			best = e
		}
	}
	return best
}

// Missing returns the elements with a zero count.
func (c ElementCount) Missing() []Element {
	var out []Element
	for _, e := range Elements {
		if c[e] == 0 {
			out = append(out, e)
		}
	}
	return out
}

type elementCountJSON struct {
	Wood  int `json:"wood"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
	Water int `json:"water"`
}

// MarshalJSON encodes the census as an object keyed by element code.
func (c ElementCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementCountJSON{
		Wood:  c[Wood],
		Fire:  c[Fire],
		Earth: c[Earth],
		Metal: c[Metal],
		Water: c[Water],
	})
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (c *ElementCount) UnmarshalJSON(data []byte) error {
	var v elementCountJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = ElementCount{Wood: v.Wood, Fire: v.Fire, Earth: v.Earth, Metal: v.Metal, Water: v.Water}
	return nil
}
