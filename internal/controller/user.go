// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/validation"
)

// UserView is the state of the profile page.
type UserView struct {
	User *model.User
}

// User is the controller of the logged-in user's profile page.
type User struct {
	Page[UserView]
	deps   Deps
	logger *slog.Logger
}

// NewUser creates a profile page controller.
func NewUser(d Deps) *User {
	return &User{deps: d, logger: d.logger("user")}
}

// Load fetches the logged-in user. Without a session nothing is fetched
// and the view stays empty.
func (c *User) Load(ctx context.Context) {
	ctx = detach(ctx)
	snap := c.deps.Session.Snapshot()
	if snap.UserID.IsZero() {
		return
	}

	c.begin()
	defer c.end()

	resp, err := c.deps.API.GetUser(ctx, snap.UserID)
	if err != nil {
		c.logger.Error("failed to fetch user", "user_id", snap.UserID, "error", err)
		c.fail(err, "Failed to fetch user.")
		return
	}
	c.succeed(func(v *UserView) { v.User = &resp.Data })
}

// UpdateUserView is the state of the profile edit form.
type UpdateUserView struct {
	Form   model.UserUpdate
	Errors validation.Errors
}

// UpdateUser is the controller of the profile edit page.
type UpdateUser struct {
	Page[UpdateUserView]
	id     model.ID
	deps   Deps
	logger *slog.Logger
}

// NewUpdateUser creates a profile edit controller for the user with the
// given id.
func NewUpdateUser(d Deps, id model.ID) *UpdateUser {
	return &UpdateUser{id: id, deps: d, logger: d.logger("update_user").With("user_id", id)}
}

// ID returns the id of the user being edited.
func (c *UpdateUser) ID() model.ID {
	return c.id
}

// guard sends the browser to the login page unless the session belongs to
// the user being edited.
func (c *UpdateUser) guard() bool {
	snap := c.deps.Session.Snapshot()
	if snap.UserID.IsZero() || snap.UserID != c.id {
		c.fail(ErrNotOwner, "Please log in to edit this profile.")
		c.navigate(Navigation{To: "/login"})
		return false
	}
	return true
}

// Load pre-fills the form with the current username and email.
func (c *UpdateUser) Load(ctx context.Context) {
	ctx = detach(ctx)
	if !c.guard() {
		return
	}

	c.begin()
	defer c.end()

	resp, err := c.deps.API.GetUser(ctx, c.id)
	if err != nil {
		c.logger.Error("failed to fetch user", "error", err)
		c.fail(err, "Failed to load user data.")
		return
	}
	c.succeed(func(v *UpdateUserView) {
		v.Form = model.UserUpdate{Username: resp.Data.Username, Email: resp.Data.Email}
	})
}

// Submit sends the non-empty fields of form. Each sent field must pass
// validation; at least one field is required.
func (c *UpdateUser) Submit(ctx context.Context, form model.UserUpdate) {
	ctx = detach(ctx)
	c.edit(func(v *UpdateUserView) {
		v.Form = model.UserUpdate{Username: form.Username, Email: form.Email}
		v.Errors = nil
	})
	if !c.guard() {
		return
	}
	if form.IsEmpty() {
		c.fail(nil, "Please fill at least one field to update.")
		return
	}
	if errs, ok := validation.ValidateForm(form.Fields()); !ok {
		c.edit(func(v *UpdateUserView) { v.Errors = errs })
		return
	}

	c.begin()
	defer c.end()

	if _, err := c.deps.API.UpdateUser(ctx, c.id, form); err != nil {
		c.logger.Warn("failed to update user", "error", err)
		c.fail(err, updateUserMessage(err))
		return
	}

	c.succeed(func(v *UpdateUserView) { v.Form = model.UserUpdate{} })
	c.inform("User updated successfully!")
	c.navigate(Navigation{To: "/user", Delay: c.deps.redirectDelay()})
}

// updateUserMessage shows a plain-text rejection verbatim and a field
// error object as JSON.
func updateUserMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if s, ok := apiErr.DataString(); ok && s != "" {
			return s
		}
		if fields, ok := apiErr.FieldErrors(); ok {
			return string(fields)
		}
	}
	return "An error occurred while updating."
}
