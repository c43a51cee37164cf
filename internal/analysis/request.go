// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package analysis

import (
	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// BirthRequest is the birth data accepted over the API. A missing
// timeIndex means the birth time is unknown.
type BirthRequest struct {
	Year        int  `json:"year" validate:"required,min=1900,max=2100"`
	Month       int  `json:"month" validate:"required,min=1,max=12"`
	Day         int  `json:"day" validate:"required,min=1,max=31"`
	TimeIndex   *int `json:"timeIndex" validate:"omitempty,timeslot"`
	IsLunar     bool `json:"isLunar"`
	IsLeapMonth bool `json:"isLeapMonth"`
}

// Input converts the request to the calculator's input. The leap flag is
// ignored for solar dates.
func (b *BirthRequest) Input() saju.BirthInput {
	slot := saju.TimeUnknown
	if b.TimeIndex != nil {
		slot = *b.TimeIndex
	}
	return saju.BirthInput{
		Date: saju.CalendarDate{
			Year:  b.Year,
			Month: b.Month,
			Day:   b.Day,
			Leap:  b.IsLunar && b.IsLeapMonth,
		},
		TimeIndex: slot,
		IsLunar:   b.IsLunar,
	}
}

// Request creates a stored analysis. MBTI may be declared directly or
// derived from questionnaire answers, not both.
type Request struct {
	BirthRequest
	Name    string        `json:"name" validate:"omitempty,max=40"`
	MBTI    string        `json:"mbti" validate:"omitempty,mbtitype"`
	Answers []mbti.Answer `json:"answers" validate:"omitempty,max=60,dive"`
}
