// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/model"
)

// term is a category or tag as shown by the browse template.
type term struct {
	ID   model.ID
	Name string
}

// browsePage is the data of the browse template.
type browsePage struct {
	Noun     string
	Action   string
	Terms    []term
	Selected string
	Posts    []model.Post
}

// Categories handles GET /categories, optionally with ?name= selecting a
// category.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	c := controller.NewCategories(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context())
	if c.Status().Error == "" {
		c.Select(r.Context(), r.URL.Query().Get("name"))
	}

	view := c.View()
	terms := make([]term, 0, len(view.Items))
	for _, cat := range view.Items {
		terms = append(terms, term{ID: cat.ID, Name: cat.Name})
	}
	h.renderBrowse(w, r, "Categories", RouteCategories, c.Noun(), c.Status(), terms, view.Selected, view.Posts)
}

// Tags handles GET /tags, optionally with ?name= selecting a tag.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	c := controller.NewTags(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context())
	if c.Status().Error == "" {
		c.Select(r.Context(), r.URL.Query().Get("name"))
	}

	view := c.View()
	terms := make([]term, 0, len(view.Items))
	for _, tag := range view.Items {
		terms = append(terms, term{ID: tag.ID, Name: tag.Name})
	}
	h.renderBrowse(w, r, "Tags", RouteTags, c.Noun(), c.Status(), terms, view.Selected, view.Posts)
}

func (h *Handler) renderBrowse(w http.ResponseWriter, r *http.Request, title, action, noun string, status controller.Status, terms []term, selected string, posts []model.Post) {
	h.renderPage(w, r, TemplateBrowse, title, status, browsePage{
		Noun:     noun,
		Action:   action,
		Terms:    terms,
		Selected: selected,
		Posts:    posts,
	})
}
