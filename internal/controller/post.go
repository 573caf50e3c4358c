// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/model"
)

// PostView is the state of the post detail page.
type PostView struct {
	Post       *model.Post
	Comments   []model.Comment
	Categories []model.Category
	Tags       []model.Tag
	Likes      []model.Like
	Draft      string
}

// Post is the controller of the post detail page.
type Post struct {
	Page[PostView]
	id     model.ID
	deps   Deps
	logger *slog.Logger
}

// NewPost creates a controller for the post with the given id.
func NewPost(d Deps, id model.ID) *Post {
	return &Post{id: id, deps: d, logger: d.logger("post").With("post_id", id)}
}

// ID returns the post id.
func (c *Post) ID() model.ID {
	return c.id
}

// Load fetches the post, its comments, categories and tags together, then
// its likes. Nothing is shown unless all four of the first calls succeed.
func (c *Post) Load(ctx context.Context) {
	ctx = detach(ctx)
	c.begin()
	defer c.end()

	var (
		post       model.Post
		comments   []model.Comment
		categories []model.Category
		tags       []model.Tag
	)
	var g errgroup.Group
	g.Go(func() error {
		resp, err := c.deps.API.GetPost(ctx, c.id)
		if err == nil {
			post = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListComments(ctx, c.id)
		if err == nil {
			comments = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListPostCategories(ctx, c.id)
		if err == nil {
			categories = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListPostTags(ctx, c.id)
		if err == nil {
			tags = resp.Data
		}
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("failed to fetch post", "error", err)
		c.fail(err, "Failed to fetch data.")
		return
	}

	c.succeed(func(v *PostView) {
		v.Post = &post
		v.Comments = comments
		v.Categories = categories
		v.Tags = tags
	})

	c.loadLikes(ctx)
}

func (c *Post) loadLikes(ctx context.Context) {
	resp, err := c.deps.API.ListLikes(ctx, c.id)
	if err != nil {
		c.logger.Warn("failed to fetch likes", "error", err)
		return
	}
	c.edit(func(v *PostView) { v.Likes = resp.Data })
}

// CanEdit reports whether the logged-in user authored the loaded post.
func (c *Post) CanEdit() bool {
	snap := c.deps.Session.Snapshot()
	if !snap.LoggedIn {
		return false
	}
	return c.View().Post.IsOwnedBy(snap.UserID)
}

// SubmitComment posts a comment as the logged-in user and re-fetches the
// comment list. Logged-out users and blank comments are refused locally.
func (c *Post) SubmitComment(ctx context.Context, content string) {
	ctx = detach(ctx)
	snap := c.deps.Session.Snapshot()
	if !snap.LoggedIn {
		c.fail(ErrNotLoggedIn, "You must be logged in to comment.")
		return
	}
	content = strings.TrimSpace(content)
	if content == "" {
		c.fail(nil, "Comment content cannot be empty.")
		return
	}

	if _, err := c.deps.API.CreateComment(ctx, model.CommentInput{
		Content: content,
		PostID:  c.id,
		UserID:  snap.UserID,
	}); err != nil {
		c.commentFailed(content, err)
		return
	}

	resp, err := c.deps.API.ListComments(ctx, c.id)
	if err != nil {
		c.commentFailed(content, err)
		return
	}
	c.edit(func(v *PostView) {
		v.Comments = resp.Data
		v.Draft = ""
	})
}

func (c *Post) commentFailed(draft string, err error) {
	c.logger.Error("failed to create comment", "error", err)
	c.edit(func(v *PostView) { v.Draft = draft })
	c.fail(err, "Failed to create comment.")
}

// Like records a like by the logged-in user. On success the returned like
// is appended to the list; on failure the list is left unchanged.
func (c *Post) Like(ctx context.Context) {
	ctx = detach(ctx)
	snap := c.deps.Session.Snapshot()
	if !snap.LoggedIn {
		c.fail(ErrNotLoggedIn, "Please log in to like posts.")
		return
	}

	resp, err := c.deps.API.CreateLike(ctx, model.LikeInput{PostID: c.id, UserID: snap.UserID})
	if err != nil {
		c.logger.Error("failed to like post", "error", err)
		c.fail(err, "Failed to like the post. Please try again.")
		return
	}
	c.edit(func(v *PostView) { v.Likes = append(v.Likes, resp.Data) })
}

// Delete removes the post when the logged-in user authored it and
// navigates home. The post is fetched first unless already loaded.
func (c *Post) Delete(ctx context.Context) {
	ctx = detach(ctx)
	if c.View().Post == nil {
		resp, err := c.deps.API.GetPost(ctx, c.id)
		if err != nil {
			c.logger.Error("failed to fetch post", "error", err)
			c.fail(err, "An error occurred while deleting the post.")
			return
		}
		c.edit(func(v *PostView) { v.Post = &resp.Data })
	}
	if !c.CanEdit() {
		c.fail(ErrNotOwner, "You can only delete your own posts.")
		return
	}

	if _, err := c.deps.API.DeletePost(ctx, c.id); err != nil {
		c.logger.Error("failed to delete post", "error", err)
		c.fail(err, "An error occurred while deleting the post.")
		return
	}
	c.inform("Post deleted successfully.")
	c.navigate(Navigation{To: "/"})
}
