// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User is a registered blog user. The password is never returned by the API.
type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the payload for logging in.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// UserUpdate is a partial update of a user. Empty fields are omitted so the
// API leaves them unchanged.
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// IsEmpty reports whether the update carries no field.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == "" && u.Email == "" && u.Password == ""
}

// Fields returns the non-empty fields keyed by form field name.
func (u UserUpdate) Fields() map[string]string {
	fields := make(map[string]string, 3)
	if u.Username != "" {
		fields["username"] = u.Username
	}
	if u.Email != "" {
		fields["email"] = u.Email
	}
	if u.Password != "" {
		fields["password"] = u.Password
	}
	return fields
}
