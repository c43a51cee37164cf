// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package validation wraps a shared go-playground/validator instance.
//
// Request DTOs declare their rules in struct tags and handlers call
// ValidateStruct. Failures come back as *RequestValidationError, which
// converts to the VALIDATION_ERROR response shape with ToAPIError.
//
// Custom tags:
//
//	timeslot  int in -1..11 (-1 means birth time unknown)
//	mbtitype  one of the sixteen four-letter types, any case
//	orderid   6 to 64 characters of [A-Za-z0-9_-]
//
// Field names in messages use the json tag, so a client sees "birthDate"
// rather than "BirthDate".
package validation
