// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler binds the page controllers to HTTP routes.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/controller"
	"github.com/olegiv/blogfront/internal/middleware"
	"github.com/olegiv/blogfront/internal/render"
	"github.com/olegiv/blogfront/internal/session"
)

// Handler serves the browser routes.
type Handler struct {
	renderer      *render.Renderer
	api           *apiclient.Client
	logger        *slog.Logger
	redirectDelay time.Duration
}

// Config holds handler configuration.
type Config struct {
	Renderer *render.Renderer
	// API is the shared request client. Each request uses a copy that reads
	// the bearer token from that request's session.
	API           *apiclient.Client
	Logger        *slog.Logger
	RedirectDelay time.Duration
}

// New creates a Handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		renderer:      cfg.Renderer,
		api:           cfg.API,
		logger:        logger,
		redirectDelay: cfg.RedirectDelay,
	}
}

// deps returns the controller dependencies for a request.
func (h *Handler) deps(r *http.Request) controller.Deps {
	state := middleware.GetSession(r)
	return controller.Deps{
		API:           h.api.WithTokens(state),
		Session:       state,
		Logger:        h.logger,
		RedirectDelay: h.redirectDelay,
	}
}

// snapshot returns the session status of a request.
func snapshot(r *http.Request) session.Snapshot {
	if state := middleware.GetSession(r); state != nil {
		return state.Snapshot()
	}
	return session.Snapshot{}
}
