// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/olegiv/blogfront/internal/model"
)

// RegisterUser creates an account.
func (c *Client) RegisterUser(ctx context.Context, in model.Registration) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/users/register", nil, in)
}

// LoginUser exchanges credentials for a bearer token.
func (c *Client) LoginUser(ctx context.Context, in model.Credentials) (*Response[model.LoginResult], error) {
	return do[model.LoginResult](ctx, c, http.MethodPost, "/users/login", nil, in)
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id model.ID) (*Response[model.User], error) {
	return do[model.User](ctx, c, http.MethodGet, "/users/"+url.PathEscape(id.String()), nil, nil)
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id model.ID, in model.UserUpdate) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPut, "/users/"+url.PathEscape(id.String())+"/update", nil, in)
}

// LogoutUser tells the API the session ended.
func (c *Client) LogoutUser(ctx context.Context) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/users/logout", nil, nil)
}
