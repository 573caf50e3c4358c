// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/model"
)

// RegisterForm handles GET /register.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, TemplateRegister, "Register", controller.Status{}, controller.RegisterView{})
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	c := controller.NewRegister(h.deps(r))
	defer c.Unmount()

	c.Submit(r.Context(), model.Registration{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	})
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}
	view := c.View()
	h.renderForm(w, r, TemplateRegister, "Register", status, len(view.Errors), view)
}

// LoginForm handles GET /login.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if snapshot(r).LoggedIn {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, TemplateLogin, "Login", controller.Status{}, controller.LoginView{})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	c := controller.NewLogin(h.deps(r))
	defer c.Unmount()

	c.Submit(r.Context(), model.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	})
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}
	code := http.StatusUnauthorized
	if status.Error == "" {
		code = http.StatusOK
	}
	h.renderPageStatus(w, r, code, TemplateLogin, "Login", status, c.View())
}

// Logout handles POST /logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c := controller.NewHeader(h.deps(r))
	defer c.Unmount()

	c.Logout(r.Context())
	if !h.follow(w, r, c.Status()) {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
	}
}
