// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/blogfront/internal/controller"
)

// Search handles GET /search?query=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	c := controller.NewSearch(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context(), r.URL.Query().Get("query"))
	h.renderPage(w, r, TemplateSearch, "Search", c.Status(), c.View())
}

// SearchSubmit handles POST /search from the header search box and
// redirects to the results page.
func (h *Handler) SearchSubmit(w http.ResponseWriter, r *http.Request) {
	back := backTo(r, RouteRoot)
	if !parseFormOrRedirect(w, r, h.renderer, back) {
		return
	}

	c := controller.NewHeader(h.deps(r))
	defer c.Unmount()

	target, err := c.SearchRedirect(r.PostFormValue("query"))
	if err != nil {
		flashError(w, r, h.renderer, back, c.Status().Error)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
