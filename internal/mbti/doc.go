// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package mbti scores the Korean personality questionnaire and describes the
// sixteen MBTI types.
//
// A respondent either supplies a known type, validated by ParseType, or
// answers the questionnaire returned by Questions, scored by Score.
package mbti
