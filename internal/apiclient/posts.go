// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/olegiv/blogfront/internal/model"
)

func postPath(id model.ID, suffix string) string {
	return "/posts/" + url.PathEscape(id.String()) + suffix
}

// ListPosts fetches all posts.
func (c *Client) ListPosts(ctx context.Context) (*Response[[]model.Post], error) {
	return doList[model.Post](ctx, c, http.MethodGet, "/posts", nil, nil)
}

// GetPost fetches a post by id.
func (c *Client) GetPost(ctx context.Context, id model.ID) (*Response[model.Post], error) {
	return do[model.Post](ctx, c, http.MethodGet, postPath(id, ""), nil, nil)
}

// CreatePost creates a post and returns it with its new id.
func (c *Client) CreatePost(ctx context.Context, in model.PostInput) (*Response[model.Post], error) {
	return do[model.Post](ctx, c, http.MethodPost, "/posts", nil, in)
}

// UpdatePost replaces the title and content of a post.
func (c *Client) UpdatePost(ctx context.Context, id model.ID, in model.PostInput) (*Response[model.Post], error) {
	return do[model.Post](ctx, c, http.MethodPut, postPath(id, ""), nil, in)
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id model.ID) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodDelete, postPath(id, ""), nil, nil)
}

// ListPostsByCategory fetches the posts filed under a category name.
func (c *Client) ListPostsByCategory(ctx context.Context, name string) (*Response[[]model.Post], error) {
	return doList[model.Post](ctx, c, http.MethodGet, "/posts/of-category", url.Values{"categoryName": {name}}, nil)
}

// ListPostsByTag fetches the posts labelled with a tag name.
func (c *Client) ListPostsByTag(ctx context.Context, name string) (*Response[[]model.Post], error) {
	return doList[model.Post](ctx, c, http.MethodGet, "/posts/of-tag", url.Values{"tagName": {name}}, nil)
}

// SearchPosts runs a full-text search over posts.
func (c *Client) SearchPosts(ctx context.Context, query string) (*Response[[]model.Post], error) {
	return doList[model.Post](ctx, c, http.MethodGet, "/posts/search", url.Values{"query": {query}}, nil)
}

// CreateComment adds a comment to a post. The response body is not
// interpreted; callers re-fetch the comment list.
func (c *Client) CreateComment(ctx context.Context, in model.CommentInput) (*Response[json.RawMessage], error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/posts/comment", nil, in)
}

// ListComments fetches the comments of a post.
func (c *Client) ListComments(ctx context.Context, postID model.ID) (*Response[[]model.Comment], error) {
	return doList[model.Comment](ctx, c, http.MethodGet, postPath(postID, "/comments"), nil, nil)
}

// ListLikes fetches the likes of a post.
func (c *Client) ListLikes(ctx context.Context, postID model.ID) (*Response[[]model.Like], error) {
	return doList[model.Like](ctx, c, http.MethodGet, postPath(postID, "/likes"), nil, nil)
}

// CreateLike likes a post.
func (c *Client) CreateLike(ctx context.Context, in model.LikeInput) (*Response[model.Like], error) {
	return do[model.Like](ctx, c, http.MethodPost, "/posts/add-like", nil, in)
}
