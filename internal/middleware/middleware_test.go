// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogfront/internal/session"
	"github.com/olegiv/blogfront/internal/testutil"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestLoadSession(t *testing.T) {
	token := testutil.SignToken(t, 12, time.Now().Add(time.Hour))
	store := session.NewMemoryStore(token)

	var got *session.State
	h := LoadSession(func(*http.Request) *session.State {
		return session.New(store)
	}, testutil.TestLoggerSilent())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetSession(r)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.True(t, got.LoggedIn())
	assert.Equal(t, "12", got.UserID().String())
}

func TestGetSession_Missing(t *testing.T) {
	assert.Nil(t, GetSession(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestFormRateLimiter(t *testing.T) {
	rl := NewFormRateLimiter(0.001, 2, testutil.TestLoggerSilent())
	h := rl.Middleware(okHandler)

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.2"), "limits are per client")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "page views are not limited")
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	assert.False(t, lc.clearIfExceeds(2))
	assert.True(t, lc.clearIfExceeds(1))
	assert.Empty(t, lc.limiters)
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{"development", true, false},
		{"production", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(okHandler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, tt.wantHSTS, rec.Header().Get("Strict-Transport-Security") != "")
		})
	}
}

func TestDefaultCSRFConfig(t *testing.T) {
	key := []byte("12345678901234567890123456789012")

	dev := DefaultCSRFConfig(key, true, "localhost:8080")
	assert.Equal(t, []string{"localhost:8080"}, dev.TrustedOrigins)

	prod := DefaultCSRFConfig(key, false, "localhost:8080")
	assert.Empty(t, prod.TrustedOrigins)
}

func TestCSRF_RejectsCrossSitePost(t *testing.T) {
	h := CSRF(DefaultCSRFConfig([]byte("12345678901234567890123456789012"), false, ""))(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=a"))
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=a"))
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/1", nil))
	assert.Contains(t, buf.String(), "path=/post/1")
	assert.Contains(t, buf.String(), "status=418")

	buf.Reset()
	RequestLogger(logger)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String(), "health checks log at debug")
}
