// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"log/slog"

	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/util"
)

// SearchView is the state of the search results page.
type SearchView struct {
	Query   string
	Results []model.Post
}

// Search is the controller of the search results page.
type Search struct {
	Page[SearchView]
	deps   Deps
	logger *slog.Logger
}

// NewSearch creates a search page controller.
func NewSearch(d Deps) *Search {
	return &Search{deps: d, logger: d.logger("search")}
}

// Load runs the search. Queries shorter than three characters are
// rejected without a call.
func (c *Search) Load(ctx context.Context, query string) {
	ctx = detach(ctx)
	q := util.NormalizeQuery(query)
	c.edit(func(v *SearchView) {
		v.Query = q
		v.Results = nil
	})
	if !util.IsSearchableQuery(q) {
		c.fail(ErrQueryTooShort, MsgQueryTooShort)
		return
	}

	c.begin()
	defer c.end()

	resp, err := c.deps.API.SearchPosts(ctx, q)
	if err != nil {
		c.logger.Error("search failed", "query", q, "error", err)
		c.fail(err, "Error fetching search results. Please try again later.")
		return
	}
	c.succeed(func(v *SearchView) { v.Results = resp.Data })
}
