// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package models

import "time"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse wraps every JSON body the API returns.
//
//	{
//	  "status": "success",
//	  "data": {"palja": {...}, "primarySibsin": {...}},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "queryTimeMs": 3}
//	}
//
// On failure Data is null and Error is set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"queryTimeMs,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"requestId,omitempty"`
}

// APIError is the machine-readable failure description.
//
// Codes: VALIDATION_ERROR, INVALID_DATE, NOT_FOUND, PAYMENT_FAILED,
// AMOUNT_MISMATCH, UNAUTHORIZED, FORBIDDEN, RATE_LIMIT_EXCEEDED,
// INTERNAL_ERROR, SERVICE_UNAVAILABLE.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error lets an APIError travel as an error value.
func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
