// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the authentication state of the frontend: whether a
// user is logged in and who, derived from the persisted bearer token.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// NewManager creates the browser session manager backed by SQLite.
// The bearer token of each browser lives in its session under TokenKey.
func NewManager(db *sql.DB, isDev bool, lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "blogfront_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
