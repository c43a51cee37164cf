// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package saju computes Four Pillars (사주팔자) charts.

The pipeline runs in one direction:

	BirthInput -> Mapper (Oracle call) -> FourPillars
	FourPillars -> TabulateElements -> ElementCount
	FourPillars -> CountSibsin -> SibsinCount
	SibsinCount + ElementCount + day stem -> SelectPrimary -> PrimaryRelation

Every step after the oracle call is a pure function over fixed tables:

  - stemTable and branchTable: symbol, element and polarity of the 10 stems
    and 12 branches
  - generates and restrains: the two five-element cycles
  - sibsinTable: names, tie-break priorities and meanings of the ten labels

The Oracle interface isolates the calendar library. Tests use OracleFunc
stubs; production wires internal/calendar.

# Time slots

Birth time is given as one of twelve two-hour slots (0-11) or TimeUnknown.
Unknown time is computed as slot 6 (12:00) and reported in BirthInfo with
TimeKnown=false. Slot 0 maps to hour 0 and every other slot to slot*2.

# Usage

	analyzer := saju.NewAnalyzer(calendar.NewLunarOracle())
	result, err := analyzer.Analyze(saju.BirthInput{
	    Date:      saju.CalendarDate{Year: 1990, Month: 5, Day: 15},
	    TimeIndex: saju.TimeUnknown,
	})
*/
package saju
