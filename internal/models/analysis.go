// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package models

import (
	"time"

	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// MBTI sources.
const (
	MBTISourceDeclared      = "declared"
	MBTISourceQuestionnaire = "questionnaire"
)

// MBTIOutcome is the personality half of an analysis. Axes is only set when
// the type came from the questionnaire.
type MBTIOutcome struct {
	Type    mbti.Type        `json:"type"`
	Source  string           `json:"source"`
	Profile mbti.Profile     `json:"profile"`
	Axes    []mbti.AxisScore `json:"axes,omitempty"`
}

// Analysis is one stored reading.
type Analysis struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Name      string       `json:"name,omitempty"`
	Saju      *saju.Result `json:"saju"`
	MBTI      *MBTIOutcome `json:"mbti,omitempty"`
}

// DayStem returns the hangul day master, or "" when Saju is unset.
func (a *Analysis) DayStem() string {
	if a.Saju == nil {
		return ""
	}
	return a.Saju.Ilgan.Hangul
}

// DayElement returns the day master's element code.
func (a *Analysis) DayElement() string {
	if a.Saju == nil {
		return ""
	}
	return a.Saju.Ilgan.Element.String()
}

// PrimarySibsin returns the hangul primary label.
func (a *Analysis) PrimarySibsin() string {
	if a.Saju == nil {
		return ""
	}
	return a.Saju.PrimarySibsin.Label.Korean()
}

// MBTIType returns the type or "" when no MBTI was given.
func (a *Analysis) MBTIType() string {
	if a.MBTI == nil {
		return ""
	}
	return string(a.MBTI.Type)
}
