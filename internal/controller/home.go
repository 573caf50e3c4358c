// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/model"
)

// maxLikeFetches bounds concurrent like-count requests on the home page.
const maxLikeFetches = 8

// PostCard is a post summary with its like count.
type PostCard struct {
	Post  model.Post
	Likes int
}

// HomeView lists every post.
type HomeView struct {
	Posts []PostCard
}

// Home is the controller of the post list page.
type Home struct {
	Page[HomeView]
	deps   Deps
	logger *slog.Logger
}

// NewHome creates a home page controller.
func NewHome(d Deps) *Home {
	return &Home{deps: d, logger: d.logger("home")}
}

// Load fetches all posts, then the like count of each post. A failed like
// count leaves that card at zero without affecting the others.
func (h *Home) Load(ctx context.Context) {
	ctx = detach(ctx)
	h.begin()
	defer h.end()

	resp, err := h.deps.API.ListPosts(ctx)
	if err != nil {
		h.logger.Error("failed to fetch posts", "error", err)
		h.fail(err, "Failed to fetch posts.")
		return
	}

	cards := make([]PostCard, len(resp.Data))
	for i, p := range resp.Data {
		cards[i] = PostCard{Post: p}
	}

	// Like failures are logged and swallowed so one card never hides another.
	var g errgroup.Group
	g.SetLimit(maxLikeFetches)
	for i := range cards {
		card := &cards[i]
		g.Go(func() error {
			likes, err := h.deps.API.ListLikes(ctx, card.Post.ID)
			if err != nil {
				h.logger.Warn("failed to fetch likes", "post_id", card.Post.ID, "error", err)
				return nil
			}
			card.Likes = len(likes.Data)
			return nil
		})
	}
	_ = g.Wait()

	h.succeed(func(v *HomeView) { v.Posts = cards })
}
