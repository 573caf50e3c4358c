// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/blogfront/internal/store"
	"github.com/olegiv/blogfront/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	version   *version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, info *version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    map[string]Check{"database": dbCheck},
	}
	if h.version != nil {
		status.Version = h.version.Version
	}

	w.Header().Set("Content-Type", "application/json")
	if dbCheck.Status != "healthy" {
		status.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// checkDatabase verifies the session database is reachable and migrated.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()

	if err := h.db.PingContext(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "database connection failed",
			Latency: time.Since(start).String(),
		}
	}
	schema, err := store.SchemaVersion(h.db)
	if err != nil || schema == 0 {
		return Check{
			Status:  "unhealthy",
			Message: "database schema not migrated",
			Latency: time.Since(start).String(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: fmt.Sprintf("schema version %d", schema),
		Latency: time.Since(start).String(),
	}
}
