// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/middleware"
)

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Handler        *Handler
	Health         *HealthHandler
	SessionManager *scs.SessionManager
	// Bind selects the session state of a request.
	Bind middleware.SessionBinder
	// Static is served under /static/. Nil disables static files.
	Static fs.FS

	CSRF            middleware.CSRFConfig
	SecurityHeaders middleware.SecurityHeadersConfig
	// FormRateLimiter limits login and registration posts. Nil disables it.
	FormRateLimiter *middleware.FormRateLimiter
	Logger          *slog.Logger
}

// NewRouter builds the browser-facing router.
func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handler
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.RedirectSlashes)
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))

	if cfg.Health != nil {
		r.Get(RouteHealth, cfg.Health.Health)
	}

	if cfg.Static != nil {
		// Assets are embedded in the binary: cache for 1 day.
		static := middleware.StaticCache(86400)(http.StripPrefix("/static/", http.FileServer(http.FS(cfg.Static))))
		r.Handle(RouteStatic, static)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(cfg.SessionManager.LoadAndSave)
		r.Use(middleware.CSRF(cfg.CSRF))
		r.Use(middleware.LoadSession(cfg.Bind, logger))

		r.Get(RouteRoot, h.Home)

		r.Get(RoutePost, h.ShowPost)
		r.Post(RoutePostComments, h.CreateComment)
		r.Post(RoutePostLike, h.LikePost)
		r.Post(RoutePostDelete, h.DeletePost)

		r.Get(RouteCategories, h.Categories)
		r.Get(RouteTags, h.Tags)

		r.Get(RouteSearch, h.Search)
		r.Post(RouteSearch, h.SearchSubmit)

		r.Get(RouteRegister, h.RegisterForm)
		r.Get(RouteLogin, h.LoginForm)
		r.Group(func(r chi.Router) {
			if cfg.FormRateLimiter != nil {
				r.Use(cfg.FormRateLimiter.Middleware)
			}
			r.Post(RouteRegister, h.Register)
			r.Post(RouteLogin, h.Login)
		})
		r.Post(RouteLogout, h.Logout)

		r.Get(RouteUser, h.Profile)
		r.Get(RouteUserUpdate, h.EditProfileForm)
		r.Post(RouteUserUpdate, h.UpdateProfile) // HTML forms can't send PUT

		r.Get(RoutePosts, h.NewPostForm)
		r.Post(RoutePosts, h.CreatePost)
		r.Get(RoutePostsID, h.EditPostForm)
		r.Post(RoutePostsID, h.UpdatePost)

		r.NotFound(h.NotFound)
	})

	return r
}

// NotFound renders the not found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderPageStatus(w, r, http.StatusNotFound, TemplateNotFound, "Page not found", controller.Status{}, nil)
}
