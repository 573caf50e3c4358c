// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for session binding, request
// protection and request logging.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/blogfront/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeySession ContextKey = "session"
)

// SessionBinder returns the session state that serves a request.
type SessionBinder func(r *http.Request) *session.State

// LoadSession creates middleware that binds a session state to each request
// and derives its logged-in status from the stored token. It must run after
// the scs LoadAndSave middleware when the state is cookie backed.
func LoadSession(bind SessionBinder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := bind(r)
			if err := state.Initialize(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "failed to read session token", "error", err)
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session state bound to the request.
// Returns nil when LoadSession did not run.
func GetSession(r *http.Request) *session.State {
	state, _ := r.Context().Value(ContextKeySession).(*session.State)
	return state
}
