// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/session"
	"github.com/olegiv/blogfront/internal/util"
	"github.com/olegiv/blogfront/internal/validation"
)

// ErrQueryTooShort is returned for a search query below the minimum length.
var ErrQueryTooShort = errors.New("query too short")

// MsgQueryTooShort is shown for a search query below the minimum length.
const MsgQueryTooShort = "Query must be at least 3 characters long."

// RegisterView is the state of the registration form.
type RegisterView struct {
	Form   model.Registration
	Errors validation.Errors
}

// Register is the controller of the registration page.
type Register struct {
	Page[RegisterView]
	deps   Deps
	logger *slog.Logger
}

// NewRegister creates a registration page controller.
func NewRegister(d Deps) *Register {
	return &Register{deps: d, logger: d.logger("register")}
}

// Submit validates the form and creates the account. Invalid input is
// reported per field without contacting the API.
func (c *Register) Submit(ctx context.Context, form model.Registration) {
	ctx = detach(ctx)
	errs, ok := validation.ValidateForm(map[string]string{
		"username": form.Username,
		"email":    form.Email,
		"password": form.Password,
	})
	c.edit(func(v *RegisterView) {
		v.Form = model.Registration{Username: form.Username, Email: form.Email}
		v.Errors = errs
	})
	if !ok {
		return
	}

	c.begin()
	defer c.end()

	if _, err := c.deps.API.RegisterUser(ctx, form); err != nil {
		c.logger.Warn("registration failed", "username", form.Username, "error", err)
		c.fail(err, apiclient.MessageOf(err, "Registration failed. Please try again."))
		return
	}

	c.succeed(func(v *RegisterView) { v.Form = model.Registration{} })
	c.inform("Registration successful!")
	c.navigate(Navigation{To: "/", Delay: c.deps.redirectDelay()})
}

// LoginView is the state of the login form.
type LoginView struct {
	Username string
}

// Login is the controller of the login page.
type Login struct {
	Page[LoginView]
	deps   Deps
	logger *slog.Logger
}

// NewLogin creates a login page controller.
func NewLogin(d Deps) *Login {
	return &Login{deps: d, logger: d.logger("login")}
}

// Submit exchanges the credentials for a token and stores it in the session.
func (c *Login) Submit(ctx context.Context, creds model.Credentials) {
	ctx = detach(ctx)
	c.edit(func(v *LoginView) { v.Username = creds.Username })
	c.begin()
	defer c.end()

	resp, err := c.deps.API.LoginUser(ctx, creds)
	if err != nil {
		c.logger.Warn("login failed", "username", creds.Username, "error", err)
		c.fail(err, apiclient.MessageOf(err, "An error occurred. Please try again."))
		return
	}

	if err := c.deps.Session.Login(ctx, resp.Data.Token); err != nil {
		c.logger.Error("failed to store session token", "error", err)
		if errors.Is(err, session.ErrInvalidToken) {
			c.fail(err, "The server returned an invalid session token.")
		} else {
			c.fail(err, "An error occurred. Please try again.")
		}
		return
	}

	c.succeed(func(v *LoginView) { v.Username = "" })
	c.inform(resp.Data.Message)
	c.navigate(Navigation{To: "/"})
}

// Header is the controller of the navigation bar shown on every page.
type Header struct {
	Page[session.Snapshot]
	deps   Deps
	logger *slog.Logger
}

// NewHeader creates a header controller reflecting the current session.
func NewHeader(d Deps) *Header {
	h := &Header{deps: d, logger: d.logger("header")}
	h.edit(func(v *session.Snapshot) { *v = d.Session.Snapshot() })
	return h
}

// Logout tells the API, clears the local session and navigates home.
// The local session is cleared even if the API call fails.
func (h *Header) Logout(ctx context.Context) {
	ctx = detach(ctx)
	if _, err := h.deps.API.LogoutUser(ctx); err != nil {
		h.logger.Warn("remote logout failed", "error", err)
	}
	if err := h.deps.Session.Logout(ctx); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}
	h.edit(func(v *session.Snapshot) { *v = h.deps.Session.Snapshot() })
	h.navigate(Navigation{To: "/"})
}

// SearchRedirect returns the search page location for query.
func (h *Header) SearchRedirect(query string) (string, error) {
	q := util.NormalizeQuery(query)
	if !util.IsSearchableQuery(q) {
		h.fail(ErrQueryTooShort, MsgQueryTooShort)
		return "", ErrQueryTooShort
	}
	return "/search?query=" + url.QueryEscape(q), nil
}
