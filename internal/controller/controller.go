// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package controller holds one page controller per browser route. A
// controller fetches the remote resources its view needs, applies user
// actions, and turns every failure into a message for the view; nothing
// it calls escapes as an error.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/session"
)

// DefaultRedirectDelay keeps a success message on screen before navigating.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Local refusals.
var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNotOwner    = errors.New("not the owner")
)

// API is the part of the request client used by controllers.
type API interface {
	RegisterUser(ctx context.Context, in model.Registration) (*apiclient.Response[json.RawMessage], error)
	LoginUser(ctx context.Context, in model.Credentials) (*apiclient.Response[model.LoginResult], error)
	GetUser(ctx context.Context, id model.ID) (*apiclient.Response[model.User], error)
	UpdateUser(ctx context.Context, id model.ID, in model.UserUpdate) (*apiclient.Response[json.RawMessage], error)
	LogoutUser(ctx context.Context) (*apiclient.Response[json.RawMessage], error)

	ListPosts(ctx context.Context) (*apiclient.Response[[]model.Post], error)
	GetPost(ctx context.Context, id model.ID) (*apiclient.Response[model.Post], error)
	CreatePost(ctx context.Context, in model.PostInput) (*apiclient.Response[model.Post], error)
	UpdatePost(ctx context.Context, id model.ID, in model.PostInput) (*apiclient.Response[model.Post], error)
	DeletePost(ctx context.Context, id model.ID) (*apiclient.Response[json.RawMessage], error)
	ListPostsByCategory(ctx context.Context, name string) (*apiclient.Response[[]model.Post], error)
	ListPostsByTag(ctx context.Context, name string) (*apiclient.Response[[]model.Post], error)
	SearchPosts(ctx context.Context, query string) (*apiclient.Response[[]model.Post], error)

	CreateComment(ctx context.Context, in model.CommentInput) (*apiclient.Response[json.RawMessage], error)
	ListComments(ctx context.Context, postID model.ID) (*apiclient.Response[[]model.Comment], error)
	ListLikes(ctx context.Context, postID model.ID) (*apiclient.Response[[]model.Like], error)
	CreateLike(ctx context.Context, in model.LikeInput) (*apiclient.Response[model.Like], error)

	ListCategories(ctx context.Context) (*apiclient.Response[[]model.Category], error)
	AssignCategory(ctx context.Context, in model.CategoryAssignment) (*apiclient.Response[json.RawMessage], error)
	UpdatePostCategories(ctx context.Context, in model.CategorySet) (*apiclient.Response[json.RawMessage], error)
	ListPostCategories(ctx context.Context, postID model.ID) (*apiclient.Response[[]model.Category], error)
	ListTags(ctx context.Context) (*apiclient.Response[[]model.Tag], error)
	AssignTag(ctx context.Context, in model.TagAssignment) (*apiclient.Response[json.RawMessage], error)
	UpdatePostTags(ctx context.Context, in model.TagSet) (*apiclient.Response[json.RawMessage], error)
	ListPostTags(ctx context.Context, postID model.ID) (*apiclient.Response[[]model.Tag], error)
}

var _ API = (*apiclient.Client)(nil)

// Session is the read and write access controllers have to the session.
type Session interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

var _ Session = (*session.State)(nil)

// Deps are the collaborators shared by all controllers.
type Deps struct {
	API     API
	Session Session
	Logger  *slog.Logger
	// RedirectDelay is how long a success message stays visible before a
	// delayed navigation. Zero uses DefaultRedirectDelay.
	RedirectDelay time.Duration
}

func (d Deps) logger(name string) *slog.Logger {
	l := d.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("controller", name)
}

func (d Deps) redirectDelay() time.Duration {
	if d.RedirectDelay > 0 {
		return d.RedirectDelay
	}
	return DefaultRedirectDelay
}

// Navigation is a route change requested by a controller.
// A non-zero Delay means the current view should stay visible first.
type Navigation struct {
	To    string
	Delay time.Duration
}

// detach keeps remote calls running when the caller goes away; late
// results are dropped by the page instead.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
