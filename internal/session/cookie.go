// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// CookieSessionStore keeps the token in the browser's server-side session.
// The context passed to its methods must come from a request wrapped by
// the manager's LoadAndSave middleware.
type CookieSessionStore struct {
	sm *scs.SessionManager
}

// NewCookieSessionStore creates a store over sm.
func NewCookieSessionStore(sm *scs.SessionManager) *CookieSessionStore {
	return &CookieSessionStore{sm: sm}
}

// Load implements TokenStore.
func (c *CookieSessionStore) Load(ctx context.Context) (string, error) {
	return c.sm.GetString(ctx, TokenKey), nil
}

// Save implements TokenStore. The session id is renewed to prevent
// session fixation.
func (c *CookieSessionStore) Save(ctx context.Context, token string) error {
	if err := c.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session: %w", err)
	}
	c.sm.Put(ctx, TokenKey, token)
	return nil
}

// Delete implements TokenStore.
func (c *CookieSessionStore) Delete(ctx context.Context) error {
	c.sm.Remove(ctx, TokenKey)
	return nil
}
