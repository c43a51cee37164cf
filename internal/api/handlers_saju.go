// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/mbtisaju/internal/analysis"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// Saju calculates a chart without storing anything.
func (h *Handler) Saju(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req analysis.BirthRequest
	if !decodeAndValidate(rw, &req) {
		return
	}

	result, cached, err := h.analyses.Calculate(req.Input())
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.SuccessCached(result, cached)
}

type elementEntry struct {
	Element   saju.Element `json:"element"`
	Korean    string       `json:"korean"`
	Hanja     string       `json:"hanja"`
	Generates saju.Element `json:"generates"`
	Restrains saju.Element `json:"restrains"`
}

type sibsinEntry struct {
	Name     string `json:"name"`
	Hanja    string `json:"hanja"`
	Code     string `json:"code"`
	Priority int    `json:"priority"`
	Meaning  string `json:"meaning"`
}

type sajuTables struct {
	Stems    []saju.SymbolView `json:"stems"`
	Branches []saju.SymbolView `json:"branches"`
	Elements []elementEntry    `json:"elements"`
	Sibsin   []sibsinEntry     `json:"sibsin"`
}

var tables = func() sajuTables {
	var t sajuTables
	for _, s := range saju.Stems() {
		t.Stems = append(t.Stems, saju.StemView(s))
	}
	for _, b := range saju.Branches() {
		t.Branches = append(t.Branches, saju.BranchView(b))
	}
	for _, e := range saju.Elements {
		t.Elements = append(t.Elements, elementEntry{
			Element:   e,
			Korean:    e.Korean(),
			Hanja:     e.Hanja(),
			Generates: e.Generates(),
			Restrains: e.Restrains(),
		})
	}
	for _, s := range saju.SibsinOrder {
		t.Sibsin = append(t.Sibsin, sibsinEntry{
			Name:     s.Korean(),
			Hanja:    s.Hanja(),
			Code:     s.Code(),
			Priority: s.Priority(),
			Meaning:  s.Meaning(),
		})
	}
	return t
}()

// SajuTables returns the stem, branch, element and sibsin vocabularies.
func (h *Handler) SajuTables(w http.ResponseWriter, r *http.Request) {
	publicCache(w, time.Hour)
	NewResponseWriter(w, r).Success(tables)
}
