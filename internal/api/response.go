// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/validation"
)

// maxBodyBytes bounds request bodies; the largest legitimate body is a full
// questionnaire.
const maxBodyBytes = 64 << 10

// ResponseWriter writes enveloped responses and fills the metadata block.
type ResponseWriter struct {
	w     http.ResponseWriter
	r     *http.Request
	start time.Time
}

// NewResponseWriter starts timing a response.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, start: time.Now()}
}

func (rw *ResponseWriter) metadata(cached bool) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(rw.start).Milliseconds(),
		Cached:      cached,
		RequestID:   logging.RequestIDFromContext(rw.r.Context()),
	}
}

// Success writes a 200 response.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.write(http.StatusOK, data, false)
}

// SuccessCached writes a 200 response, flagging whether data was served
// from cache.
func (rw *ResponseWriter) SuccessCached(data interface{}, cached bool) {
	rw.write(http.StatusOK, data, cached)
}

// Created writes a 201 response.
func (rw *ResponseWriter) Created(data interface{}) {
	rw.write(http.StatusCreated, data, false)
}

func (rw *ResponseWriter) write(status int, data interface{}, cached bool) {
	respondJSON(rw.w, rw.r, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: rw.metadata(cached),
	})
}

// Error writes an error envelope.
func (rw *ResponseWriter) Error(status int, code, message string, details map[string]interface{}) {
	respondJSON(rw.w, rw.r, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: rw.metadata(false),
		Error:    &models.APIError{Code: code, Message: message, Details: details},
	})
}

// APIError writes a prepared APIError with status.
func (rw *ResponseWriter) APIError(status int, apiErr *models.APIError) {
	rw.Error(status, apiErr.Code, apiErr.Message, apiErr.Details)
}

// InternalError logs err and writes a 500 that does not echo it.
func (rw *ResponseWriter) InternalError(err error) {
	logging.Ctx(rw.r.Context()).Error().
		Str("path", rw.r.URL.Path).
		Str("error", logging.SanitizeError(err)).
		Msg("Request failed")
	rw.Error(http.StatusInternalServerError, ErrCodeInternal, "서버 내부 오류가 발생했습니다", nil)
}

// respondJSON marshals response, tags it with an ETag and answers
// If-None-Match on GET with 304. Handlers that want caching set
// Cache-Control before calling; everything else is no-store.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	if h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", "no-store")
	}

	if status == http.StatusOK && response.Error == nil {
		etag := `"` + generateETag(response.Data) + `"`
		h.Set("ETag", etag)
		if r != nil && r.Method == http.MethodGet && etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the data payload with FNV-1a so the volatile metadata
// block does not defeat revalidation.
func generateETag(data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	hash := uint32(2166136261)
	for _, c := range b {
		hash ^= uint32(c)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

// respondError writes an error envelope without a ResponseWriter, for
// middleware.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	NewResponseWriter(w, r).Error(status, code, message, details)
}

// validateRequest runs the struct validator over v.
func validateRequest(v interface{}) *models.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// errBodyRequired is returned by decodeJSON for an empty body.
var errBodyRequired = errors.New("request body is required")

// decodeJSON strictly decodes a bounded JSON body into v. The body is read
// in full first: goccy's streaming decoder corrupts multi-byte UTF-8 split
// across reads.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return errBodyRequired
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errBodyRequired
		}
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// decodeAndValidate decodes and validates v, writing a 400 on failure. It
// reports whether the handler should continue.
func decodeAndValidate(rw *ResponseWriter, v interface{}) bool {
	if err := decodeJSON(rw.w, rw.r, v); err != nil {
		msg := "요청 본문을 해석할 수 없습니다"
		if errors.Is(err, errBodyRequired) {
			msg = "요청 본문이 필요합니다"
		}
		logging.Ctx(rw.r.Context()).Debug().Str("error", logging.SanitizeError(err)).Msg("Rejected request body")
		rw.Error(http.StatusBadRequest, ErrCodeValidation, msg, nil)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		rw.APIError(http.StatusBadRequest, apiErr)
		return false
	}
	return true
}
