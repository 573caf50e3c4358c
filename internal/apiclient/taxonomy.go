// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/olegiv/blogfront/internal/model"
)

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) (*Response[[]model.Category], error) {
	return doList[model.Category](ctx, c, http.MethodGet, "/posts/categories", nil, nil)
}

// AssignCategory links one category to a post.
func (c *Client) AssignCategory(ctx context.Context, in model.CategoryAssignment) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/posts/add-category", nil, in)
}

// UpdatePostCategories replaces all categories of a post.
func (c *Client) UpdatePostCategories(ctx context.Context, in model.CategorySet) (*Response[json.RawMessage], error) {
	if in.CategoryIDs == nil {
		in.CategoryIDs = []model.ID{}
	}
	return do[json.RawMessage](ctx, c, http.MethodPut, "/posts/update-categories", nil, in)
}

// ListPostCategories fetches the categories of a post.
func (c *Client) ListPostCategories(ctx context.Context, postID model.ID) (*Response[[]model.Category], error) {
	return doList[model.Category](ctx, c, http.MethodGet, postPath(postID, "/categories"), nil, nil)
}

// ListTags fetches every tag.
func (c *Client) ListTags(ctx context.Context) (*Response[[]model.Tag], error) {
	return doList[model.Tag](ctx, c, http.MethodGet, "/posts/tags", nil, nil)
}

// AssignTag links one tag to a post.
func (c *Client) AssignTag(ctx context.Context, in model.TagAssignment) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/posts/add-tag", nil, in)
}

// UpdatePostTags replaces all tags of a post.
func (c *Client) UpdatePostTags(ctx context.Context, in model.TagSet) (*Response[json.RawMessage], error) {
	if in.TagIDs == nil {
		in.TagIDs = []model.ID{}
	}
	return do[json.RawMessage](ctx, c, http.MethodPut, "/posts/update-tags", nil, in)
}

// ListPostTags fetches the tags of a post.
func (c *Client) ListPostTags(ctx context.Context, postID model.ID) (*Response[[]model.Tag], error) {
	return doList[model.Tag](ctx, c, http.MethodGet, postPath(postID, "/tags"), nil, nil)
}
