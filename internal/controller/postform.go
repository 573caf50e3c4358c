// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
)

// PostForm is the content of the create and update post forms.
type PostForm struct {
	Title       string
	Content     string
	CategoryIDs []model.ID
	TagIDs      []model.ID
}

func (f PostForm) missingFields() bool {
	return strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == ""
}

// PostFormView is the state of a post form page.
type PostFormView struct {
	Form       PostForm
	Categories []model.Category
	Tags       []model.Tag
	// Post is the post being edited; nil on the create page.
	Post *model.Post
}

const msgMissingFields = "Title and content are required."

// CreatePost is the controller of the new post page.
type CreatePost struct {
	Page[PostFormView]
	deps   Deps
	logger *slog.Logger
}

// NewCreatePost creates a new post page controller.
func NewCreatePost(d Deps) *CreatePost {
	return &CreatePost{deps: d, logger: d.logger("create_post")}
}

// Load fetches the category and tag choices. The two lists load
// independently; a failure of one does not hide the other.
func (c *CreatePost) Load(ctx context.Context) {
	ctx = detach(ctx)
	c.begin()
	defer c.end()

	var (
		catGroup, tagGroup errgroup.Group
		categories         []model.Category
		tags               []model.Tag
	)
	catGroup.Go(func() error {
		resp, err := c.deps.API.ListCategories(ctx)
		if err == nil {
			categories = resp.Data
		}
		return err
	})
	tagGroup.Go(func() error {
		resp, err := c.deps.API.ListTags(ctx)
		if err == nil {
			tags = resp.Data
		}
		return err
	})
	catErr := catGroup.Wait()
	tagErr := tagGroup.Wait()

	c.edit(func(v *PostFormView) {
		if catErr == nil {
			v.Categories = categories
		}
		if tagErr == nil {
			v.Tags = tags
		}
	})
	switch {
	case catErr != nil:
		c.logger.Error("failed to fetch categories", "error", catErr)
		c.fail(catErr, "Failed to fetch categories.")
	case tagErr != nil:
		c.logger.Error("failed to fetch tags", "error", tagErr)
		c.fail(tagErr, "Failed to fetch tags.")
	}
}

// Submit creates the post as the logged-in user, then assigns each
// selected category and tag. Assignment failures are reported together
// and do not undo the post. On completion the form is reset and the page
// navigates home.
func (c *CreatePost) Submit(ctx context.Context, form PostForm) {
	ctx = detach(ctx)
	c.edit(func(v *PostFormView) { v.Form = form })

	snap := c.deps.Session.Snapshot()
	if !snap.LoggedIn {
		c.fail(ErrNotLoggedIn, "User not logged in. Please log in to create a post.")
		return
	}
	if form.missingFields() {
		c.fail(nil, msgMissingFields)
		return
	}

	c.begin()
	defer c.end()

	resp, err := c.deps.API.CreatePost(ctx, model.PostInput{
		Title:    form.Title,
		Content:  form.Content,
		AuthorID: snap.UserID,
	})
	if err != nil {
		c.logger.Error("failed to create post", "error", err)
		c.fail(err, "Error creating post: "+apiclient.MessageOf(err, "Unknown error"))
		return
	}
	postID := resp.Data.ID

	if err := c.associate(ctx, postID, form.CategoryIDs, form.TagIDs); err != nil {
		c.logger.Warn("post created with incomplete associations", "post_id", postID, "error", err)
		c.inform("Post created, but some categories or tags could not be assigned.")
	} else {
		c.inform("Post created successfully!")
	}

	c.succeed(func(v *PostFormView) { v.Form = PostForm{} })
	c.navigate(Navigation{To: "/"})
}

// associate issues one assignment call per category and tag concurrently
// and returns all failures joined. Every call runs even when others fail.
func (c *CreatePost) associate(ctx context.Context, postID model.ID, categoryIDs, tagIDs []model.ID) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) error {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		return nil
	}

	for _, id := range categoryIDs {
		g.Go(func() error {
			if _, err := c.deps.API.AssignCategory(ctx, model.CategoryAssignment{PostID: postID, CategoryID: id}); err != nil {
				return record(fmt.Errorf("category %s: %w", id, err))
			}
			return nil
		})
	}
	for _, id := range tagIDs {
		g.Go(func() error {
			if _, err := c.deps.API.AssignTag(ctx, model.TagAssignment{PostID: postID, TagID: id}); err != nil {
				return record(fmt.Errorf("tag %s: %w", id, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// UpdatePost is the controller of the edit post page.
type UpdatePost struct {
	Page[PostFormView]
	id     model.ID
	deps   Deps
	logger *slog.Logger
}

// NewUpdatePost creates an edit page controller for the post with the given id.
func NewUpdatePost(d Deps, id model.ID) *UpdatePost {
	return &UpdatePost{id: id, deps: d, logger: d.logger("update_post").With("post_id", id)}
}

// ID returns the post id.
func (c *UpdatePost) ID() model.ID {
	return c.id
}

// Load fetches the post, all categories and tags, and the post's current
// categories and tags together, and pre-fills the form. Logged-out users
// are sent to the login page without any call.
func (c *UpdatePost) Load(ctx context.Context) {
	ctx = detach(ctx)
	if !c.deps.Session.Snapshot().LoggedIn {
		c.fail(ErrNotLoggedIn, "Please log in to edit posts.")
		c.navigate(Navigation{To: "/login"})
		return
	}

	c.begin()
	defer c.end()

	var (
		post           model.Post
		categories     []model.Category
		tags           []model.Tag
		postCategories []model.Category
		postTags       []model.Tag
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
		resp, err := c.deps.API.ListCategories(ctx)
		if err == nil {
			categories = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListTags(ctx)
		if err == nil {
			tags = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListPostCategories(ctx, c.id)
		if err == nil {
			postCategories = resp.Data
		}
		return err
	})
	g.Go(func() error {
		resp, err := c.deps.API.ListPostTags(ctx, c.id)
		if err == nil {
			postTags = resp.Data
		}
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("failed to fetch post data", "error", err)
		c.fail(err, "Failed to fetch data.")
		return
	}

	c.succeed(func(v *PostFormView) {
		v.Post = &post
		v.Categories = categories
		v.Tags = tags
		v.Form = PostForm{
			Title:       post.Title,
			Content:     post.Content,
			CategoryIDs: model.CategoryIDs(postCategories),
			TagIDs:      model.TagIDs(postTags),
		}
	})
	if !post.IsOwnedBy(c.deps.Session.Snapshot().UserID) {
		c.fail(ErrNotOwner, "You can only edit your own posts.")
	}
}

// Submit updates the post and replaces its categories and tags. The post
// is fetched for the ownership check unless already loaded. On success the
// page navigates to the post after the redirect delay.
func (c *UpdatePost) Submit(ctx context.Context, form PostForm) {
	ctx = detach(ctx)
	c.edit(func(v *PostFormView) { v.Form = form })

	snap := c.deps.Session.Snapshot()
	if !snap.LoggedIn {
		c.fail(ErrNotLoggedIn, "Please log in to edit posts.")
		c.navigate(Navigation{To: "/login"})
		return
	}
	if form.missingFields() {
		c.fail(nil, msgMissingFields)
		return
	}

	c.begin()
	defer c.end()

	post := c.View().Post
	if post == nil {
		resp, err := c.deps.API.GetPost(ctx, c.id)
		if err != nil {
			c.logger.Error("failed to fetch post", "error", err)
			c.fail(err, "Error updating post.")
			return
		}
		post = &resp.Data
		c.edit(func(v *PostFormView) { v.Post = post })
	}
	if !post.IsOwnedBy(snap.UserID) {
		c.fail(ErrNotOwner, "You can only edit your own posts.")
		return
	}

	resp, err := c.deps.API.UpdatePost(ctx, c.id, model.PostInput{
		Title:    form.Title,
		Content:  form.Content,
		AuthorID: snap.UserID,
	})
	if err != nil {
		c.logger.Error("failed to update post", "error", err)
		c.fail(err, "Error updating post.")
		return
	}
	postID := resp.Data.ID
	if postID.IsZero() {
		postID = c.id
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := c.deps.API.UpdatePostCategories(ctx, model.CategorySet{PostID: postID, CategoryIDs: form.CategoryIDs})
		return err
	})
	g.Go(func() error {
		_, err := c.deps.API.UpdatePostTags(ctx, model.TagSet{PostID: postID, TagIDs: form.TagIDs})
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("failed to update post associations", "error", err)
		c.fail(err, "Error updating post.")
		return
	}

	c.succeed(func(*PostFormView) {})
	c.inform("Post updated successfully!")
	c.navigate(Navigation{To: "/post/" + postID.String(), Delay: c.deps.redirectDelay()})
}
