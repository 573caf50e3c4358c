// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/model"
)

// Home handles GET / - the post list.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	c := controller.NewHome(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context())
	h.renderPage(w, r, TemplateHome, "Latest posts", c.Status(), c.View())
}

// postPage is the data of the post detail template.
type postPage struct {
	controller.PostView
	CanEdit bool
}

// ShowPost handles GET /post/{id}.
func (h *Handler) ShowPost(w http.ResponseWriter, r *http.Request) {
	c := controller.NewPost(h.deps(r), model.ID(chi.URLParam(r, "id")))
	defer c.Unmount()

	c.Load(r.Context())
	h.renderPost(w, r, c, c.View(), c.Status())
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, c *controller.Post, view controller.PostView, status controller.Status) {
	title := "Post"
	if view.Post != nil {
		title = view.Post.Title
	}
	code := statusCode(status)
	if view.Post == nil && status.Error != "" && status.Cause != nil {
		code = http.StatusBadGateway
	}
	h.renderPageStatus(w, r, code, TemplatePost, title, status, postPage{PostView: view, CanEdit: c.CanEdit()})
}

// CreateComment handles POST /post/{id}/comments.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, h.renderer, postPath(id)) {
		return
	}

	c := controller.NewPost(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.SubmitComment(r.Context(), r.PostFormValue("content"))
	failed := c.Status()
	if failed.Error == "" {
		http.Redirect(w, r, postPath(id)+"#comments", http.StatusSeeOther)
		return
	}

	// Show the page again with the draft kept in the form.
	draft := c.View().Draft
	page := controller.NewPost(h.deps(r), model.ID(id))
	defer page.Unmount()
	page.Load(r.Context())

	view := page.View()
	view.Draft = draft
	if page.Status().Error != "" {
		failed = page.Status()
	}
	h.renderPost(w, r, page, view, failed)
}

// LikePost handles POST /post/{id}/like and returns to the referring page.
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := backTo(r, postPath(id))

	c := controller.NewPost(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.Like(r.Context())
	if status := c.Status(); status.Error != "" {
		flashError(w, r, h.renderer, back, status.Error)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// DeletePost handles POST /post/{id}/delete.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c := controller.NewPost(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.Delete(r.Context())
	if h.follow(w, r, c.Status()) {
		return
	}
	flashError(w, r, h.renderer, postPath(id), c.Status().Error)
}

// postFormPage is the data of the create and update post templates.
type postFormPage struct {
	controller.PostFormView
	Action  string
	Editing bool
	// Forbidden hides the form from users who may not edit the post.
	Forbidden bool
}

func newPostFormPage(view controller.PostFormView, status controller.Status, action string, editing bool) postFormPage {
	return postFormPage{
		PostFormView: view,
		Action:       action,
		Editing:      editing,
		Forbidden:    errors.Is(status.Cause, controller.ErrNotOwner),
	}
}

// parsePostForm reads the post form fields.
func parsePostForm(r *http.Request) controller.PostForm {
	return controller.PostForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Content:     r.PostFormValue("content"),
		CategoryIDs: model.ParseIDs(r.PostForm["categories"]),
		TagIDs:      model.ParseIDs(r.PostForm["tags"]),
	}
}

// NewPostForm handles GET /posts - the create post form.
func (h *Handler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	c := controller.NewCreatePost(h.deps(r))
	defer c.Unmount()

	c.Load(r.Context())
	status := c.Status()
	h.renderPage(w, r, TemplateCreatePost, "New post", status, newPostFormPage(c.View(), status, RoutePosts, false))
}

// CreatePost handles POST /posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RoutePosts) {
		return
	}

	c := controller.NewCreatePost(h.deps(r))
	defer c.Unmount()

	c.Submit(r.Context(), parsePostForm(r))
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}

	// Failed: show the form again with its choices.
	if !errors.Is(status.Cause, controller.ErrNotLoggedIn) {
		c.Load(r.Context())
	}
	h.renderPage(w, r, TemplateCreatePost, "New post", status, newPostFormPage(c.View(), status, RoutePosts, false))
}

// EditPostForm handles GET /posts/{id} - the edit post form.
func (h *Handler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c := controller.NewUpdatePost(h.deps(r), model.ID(id))
	defer c.Unmount()

	c.Load(r.Context())
	status := c.Status()
	if h.follow(w, r, status) {
		return
	}
	h.renderPage(w, r, TemplateUpdatePost, "Edit post", status, newPostFormPage(c.View(), status, "/posts/"+id, true))
}

// UpdatePost handles POST /posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, h.renderer, "/posts/"+id) {
		return
	}

	c := controller.NewUpdatePost(h.deps(r), model.ID(id))
	defer c.Unmount()

	form := parsePostForm(r)
	c.Submit(r.Context(), form)
	failed := c.Status()
	if h.follow(w, r, failed) {
		return
	}
	if failed.Error == "" {
		// Updated: the page shows the message, then refreshes to the post.
		h.renderPage(w, r, TemplateUpdatePost, "Edit post", failed, newPostFormPage(c.View(), failed, "/posts/"+id, true))
		return
	}

	// Show the form again with the submitted values and all choices.
	page := controller.NewUpdatePost(h.deps(r), model.ID(id))
	defer page.Unmount()
	page.Load(r.Context())

	view := page.View()
	view.Form = form
	if page.Status().Error != "" {
		failed = page.Status()
	}
	h.renderPage(w, r, TemplateUpdatePost, "Edit post", failed, newPostFormPage(view, failed, "/posts/"+id, true))
}
