// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/render"
	"github.com/olegiv/blogfront/internal/util"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, r *http.Request, logMsg string, args ...any) {
	slog.ErrorContext(r.Context(), logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// statusCode maps the outcome of a controller to an HTTP status.
func statusCode(status controller.Status) int {
	switch {
	case errors.Is(status.Cause, controller.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(status.Cause, controller.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case status.Error != "" && status.Cause == nil:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}

// renderPage renders a page template with the controller outcome.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, status controller.Status, data any) {
	h.renderPageStatus(w, r, statusCode(status), name, title, status, data)
}

// renderForm renders a form page, answering 422 when fields were rejected.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, name, title string, status controller.Status, fieldErrors int, data any) {
	code := statusCode(status)
	if fieldErrors > 0 && code == http.StatusOK {
		code = http.StatusUnprocessableEntity
	}
	h.renderPageStatus(w, r, code, name, title, status, data)
}

func (h *Handler) renderPageStatus(w http.ResponseWriter, r *http.Request, code int, name, title string, status controller.Status, data any) {
	err := h.renderer.RenderStatus(w, r, code, name, render.TemplateData{
		Title:   title,
		Data:    data,
		Status:  status,
		Session: snapshot(r),
	})
	if err != nil {
		logAndInternalError(w, r, "failed to render page", "template", name, "error", err)
	}
}

// follow applies an immediate navigation requested by a controller as a
// redirect, carrying the controller message (or error) as flash. It
// reports whether a redirect was written. Delayed navigations are left to
// the rendered page.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request, status controller.Status) bool {
	nav := status.Navigation
	if nav == nil || nav.Delay > 0 {
		return false
	}
	switch {
	case status.Error != "":
		flashError(w, r, h.renderer, nav.To, status.Error)
	case status.Message != "":
		flashSuccess(w, r, h.renderer, nav.To, status.Message)
	default:
		http.Redirect(w, r, nav.To, http.StatusSeeOther)
	}
	return true
}

// backTo returns the local page the request came from, or fallback.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host || !util.IsLocalPath(ref.RequestURI()) {
		return fallback
	}
	return ref.RequestURI()
}
