// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/models"
)

type contextKey string

// ClaimsContextKey holds *Claims for authenticated requests.
const ClaimsContextKey contextKey = "claims"

// Middleware authenticates bearer tokens.
type Middleware struct {
	jwt *JWTManager
}

// NewMiddleware returns a Middleware; a nil manager rejects every request.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwt: jwtManager}
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return c, ok
}

// Authenticate requires a valid bearer token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.jwt == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "관리자 API가 비활성화되어 있습니다")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증 토큰이 필요합니다")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Str("error", logging.SanitizeError(err)).Msg("Token validation failed")
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin", error="invalid_token"`)
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "유효하지 않은 토큰입니다")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole authenticates and then admits role or RoleAdmin.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || (claims.Role != role && claims.Role != RoleAdmin) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "권한이 없습니다")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}
