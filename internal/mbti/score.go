// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package mbti

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAnswer covers unknown question IDs, out-of-range values,
// duplicate answers and axes left unanswered.
var ErrInvalidAnswer = errors.New("invalid questionnaire answer")

const (
	// MinValue and MaxValue bound the five-point agreement scale.
	MinValue = 1
	MaxValue = 5

	neutral = 3
)

// Question is one questionnaire item. Agreeing moves the score toward Pole.
type Question struct {
	ID        int       `json:"id"`
	Dimension Dimension `json:"-"`
	Axis      string    `json:"axis"`
	Text      string    `json:"text"`
	Pole      string    `json:"-"`
}

// Answer is a respondent's agreement with one question.
type Answer struct {
	QuestionID int `json:"questionId" validate:"required,min=1"`
	Value      int `json:"value" validate:"required,min=1,max=5"`
}

// AxisScore is the outcome on one axis.
type AxisScore struct {
	Axis          string `json:"axis"`
	Letter        string `json:"letter"`
	Score         int    `json:"score"`
	FirstPercent  int    `json:"firstPercent"`
	SecondPercent int    `json:"secondPercent"`
	Answered      int    `json:"answered"`
}

// Result is the outcome of scoring a full questionnaire.
type Result struct {
	Type    Type         `json:"type"`
	Axes    [4]AxisScore `json:"axes"`
	Profile Profile      `json:"profile"`
}

var questionIndex = func() map[int]Question {
	m := make(map[int]Question, len(questions))
	for _, q := range questions {
		m[q.ID] = q
	}
	return m
}()

// Questions returns a copy of the questionnaire in presentation order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Score computes a type from answers. Each answer contributes value-3 toward
// the question's pole. A zero axis score resolves to the first pole
// (E, S, T or J).
func Score(answers []Answer) (*Result, error) {
	var (
		scores   [4]int
		answered [4]int
		seen     = make(map[int]bool, len(answers))
	)

	for _, a := range answers {
		q, ok := questionIndex[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %d", ErrInvalidAnswer, a.QuestionID)
		}
		if a.Value < MinValue || a.Value > MaxValue {
			return nil, fmt.Errorf("%w: question %d value %d outside %d-%d", ErrInvalidAnswer, a.QuestionID, a.Value, MinValue, MaxValue)
		}
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: question %d answered twice", ErrInvalidAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		first, _ := q.Dimension.Poles()
		delta := a.Value - neutral
		if q.Pole[0] != first {
			delta = -delta
		}
		scores[q.Dimension] += delta
		answered[q.Dimension]++
	}

	res := &Result{}
	letters := make([]byte, 4)
	for _, d := range Dimensions {
		if answered[d] == 0 {
			return nil, fmt.Errorf("%w: no answers for %s", ErrInvalidAnswer, d)
		}
		first, second := d.Poles()
		letter := first
		if scores[d] < 0 {
			letter = second
		}
		letters[d] = letter

		maxScore := float64(answered[d] * (MaxValue - neutral))
		firstPct := int(math.Round(50 + float64(scores[d])/maxScore*50))
		res.Axes[d] = AxisScore{
			Axis:          d.String(),
			Letter:        string(letter),
			Score:         scores[d],
			FirstPercent:  firstPct,
			SecondPercent: 100 - firstPct,
			Answered:      answered[d],
		}
	}

	res.Type = Type(letters)
	res.Profile, _ = LookupProfile(res.Type)
	return res, nil
}
