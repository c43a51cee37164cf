// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/mbtisaju/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, JWTIssuer: "mbtisaju"})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	t.Parallel()
	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	token, err := m.GenerateToken("alice", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" || claims.Role != RoleAdmin || claims.Issuer != "mbtisaju" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	valid, _ := m.GenerateToken("alice", RoleAdmin)

	expired := newTestManager(t)
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredToken, _ := expired.GenerateToken("alice", RoleAdmin)

	otherIssuer, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, JWTIssuer: "elsewhere"})
	otherIssuerToken, _ := otherIssuer.GenerateToken("alice", RoleAdmin)

	otherSecret, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("z", 32), JWTIssuer: "mbtisaju"})
	otherSecretToken, _ := otherSecret.GenerateToken("alice", RoleAdmin)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"expired":      expiredToken,
		"wrong issuer": otherIssuerToken,
		"wrong secret": otherSecretToken,
		"alg none":     noneToken,
		"tampered":     tamper(valid),
		"garbage":      "not.a.token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

// tamper flips one character inside the signature.
func tamper(token string) string {
	b := []byte(token)
	i := len(b) - 6
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	admin, _ := m.GenerateToken("alice", RoleAdmin)
	viewer, _ := m.GenerateToken("bob", RoleViewer)
	other, _ := m.GenerateToken("carol", "guest")

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, found := ClaimsFromContext(r.Context())
		if !found {
			t.Error("claims missing from context")
		}
		_, _ = w.Write([]byte(claims.Username))
	})
	handler := NewMiddleware(m).RequireRole(RoleViewer)(ok)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"basic scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"admin", "Bearer " + admin, http.StatusOK},
		{"viewer", "Bearer " + viewer, http.StatusOK},
		{"lowercase scheme", "bearer " + viewer, http.StatusOK},
		{"other role", "Bearer " + other, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats/overview", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusOK && !strings.Contains(rec.Body.String(), `"status":"error"`) {
				t.Errorf("error body = %s", rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_Disabled(t *testing.T) {
	t.Parallel()
	handler := NewMiddleware(nil).Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached without manager")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
