// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"log/slog"
	"strings"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
)

// BrowseView is the state of a taxonomy page: the list of terms and the
// posts of the selected term.
type BrowseView[T any] struct {
	Items    []T
	Selected string
	Posts    []model.Post
}

// Browse is the controller shared by the categories and tags pages.
type Browse[T any] struct {
	Page[BrowseView[T]]
	list    func(context.Context) (*apiclient.Response[[]T], error)
	postsOf func(context.Context, string) (*apiclient.Response[[]model.Post], error)
	noun    string
	logger  *slog.Logger
}

// NewCategories creates the categories page controller.
func NewCategories(d Deps) *Browse[model.Category] {
	return &Browse[model.Category]{
		list:    d.API.ListCategories,
		postsOf: d.API.ListPostsByCategory,
		noun:    "category",
		logger:  d.logger("categories"),
	}
}

// NewTags creates the tags page controller.
func NewTags(d Deps) *Browse[model.Tag] {
	return &Browse[model.Tag]{
		list:    d.API.ListTags,
		postsOf: d.API.ListPostsByTag,
		noun:    "tag",
		logger:  d.logger("tags"),
	}
}

// Noun names the kind of term, "category" or "tag".
func (c *Browse[T]) Noun() string {
	return c.noun
}

// Load fetches every term.
func (c *Browse[T]) Load(ctx context.Context) {
	ctx = detach(ctx)
	c.begin()
	defer c.end()

	resp, err := c.list(ctx)
	if err != nil {
		c.logger.Error("failed to fetch terms", "error", err)
		c.fail(err, "Failed to fetch "+plural(c.noun)+".")
		return
	}
	c.succeed(func(v *BrowseView[T]) { v.Items = resp.Data })
}

// Select fetches the posts of the term with the given name. A blank name
// clears the selection without a call.
func (c *Browse[T]) Select(ctx context.Context, name string) {
	ctx = detach(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		c.edit(func(v *BrowseView[T]) {
			v.Selected = ""
			v.Posts = nil
		})
		return
	}

	c.begin()
	defer c.end()

	resp, err := c.postsOf(ctx, name)
	if err != nil {
		c.logger.Error("failed to fetch posts", "name", name, "error", err)
		c.fail(err, "Failed to fetch posts for the selected "+c.noun+".")
		return
	}
	c.succeed(func(v *BrowseView[T]) {
		v.Selected = name
		v.Posts = resp.Data
	})
}

func plural(noun string) string {
	if strings.HasSuffix(noun, "y") {
		return strings.TrimSuffix(noun, "y") + "ies"
	}
	return noun + "s"
}
