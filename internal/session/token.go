// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/olegiv/blogfront/internal/model"
)

// Token claim errors.
var (
	ErrMissingExpiry = errors.New("token has no expiry")
	ErrExpired       = errors.New("token expired")
	ErrMissingUserID = errors.New("token has no user id")
)

// Claims is the part of the token payload the frontend relies on.
type Claims struct {
	UserID    model.ID
	ExpiresAt time.Time
}

// DecodeToken extracts the claims of a JWT. With a nil key the signature is
// not checked. The token is rejected when it has no "exp", when exp <= now,
// or when it has no "id".
func DecodeToken(token string, now time.Time, key []byte) (Claims, error) {
	mc := jwt.MapClaims{}

	if len(key) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
			return Claims{}, fmt.Errorf("decoding token: %w", err)
		}
	} else {
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithTimeFunc(func() time.Time { return now }),
		)
		keyFunc := func(*jwt.Token) (any, error) { return key, nil }
		if _, err := parser.ParseWithClaims(token, mc, keyFunc); err != nil {
			return Claims{}, fmt.Errorf("verifying token: %w", err)
		}
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("reading expiry: %w", err)
	}
	if exp == nil {
		return Claims{}, ErrMissingExpiry
	}
	if !exp.After(now) {
		return Claims{}, ErrExpired
	}

	// A session without a user id cannot own posts or comments, so such a
	// token counts as invalid rather than as logged in with no user.
	id := model.IDFromAny(mc["id"])
	if id.IsZero() {
		return Claims{}, ErrMissingUserID
	}

	return Claims{UserID: id, ExpiresAt: exp.Time}, nil
}
