// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/model"
)

// userPage is the data of the profile edit template.
type userPage struct {
	controller.UpdateUserView
	Action string
}

// Profile handles GET /user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	c := controller.NewUser(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context())
	h.renderPage(w, r, TemplateUser, "Profile", c.Status(), c.View())
}

// EditProfileForm handles GET /users/{id}/update.
func (h *Handler) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c := controller.NewUpdateUser(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.Load(r.Context())
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}
	h.renderPage(w, r, TemplateUpdateUser, "Edit profile", status, userPage{UpdateUserView: c.View(), Action: r.URL.Path})
}

// UpdateProfile handles POST /users/{id}/update.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, h.renderer, r.URL.Path) {
		return
	}

	c := controller.NewUpdateUser(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.Submit(r.Context(), model.UserUpdate{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	})
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}
	view := c.View()
	h.renderForm(w, r, TemplateUpdateUser, "Edit profile", status, len(view.Errors), userPage{UpdateUserView: view, Action: r.URL.Path})
}
