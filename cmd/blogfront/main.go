// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/config"
	"github.com/olegiv/blogfront/internal/handler"
	"github.com/olegiv/blogfront/internal/logging"
	"github.com/olegiv/blogfront/internal/middleware"
	"github.com/olegiv/blogfront/internal/render"
	"github.com/olegiv/blogfront/internal/session"
	"github.com/olegiv/blogfront/internal/store"
	"github.com/olegiv/blogfront/internal/version"
	"github.com/olegiv/blogfront/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blogfront - web client for the blog API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_API_URL         Blog API base URL (default: http://localhost:5000/api)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_DB_PATH         SQLite session database (default: ./data/blogfront.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_TOKEN_STORE     Token store: session|file|redis (default: session)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_REDIS_URL       Redis URL for the redis token store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGFRONT_JWT_SECRET      Verify token signatures with this key (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.NewManager(db, cfg.IsDevelopment(), cfg.SessionLifetime)

	bind, closeStore, err := sessionBinder(cfg, sessionManager, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := apiclient.New(apiclient.Config{
		BaseURL:            cfg.APIURL,
		UserAgent:          versionInfo.UserAgent(),
		Timeout:            cfg.RequestTimeout,
		IncludeCredentials: cfg.SharedIdentity(),
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	h := handler.New(handler.Config{
		Renderer:      renderer,
		API:           client,
		Logger:        logger,
		RedirectDelay: cfg.RedirectDelay,
	})

	router := handler.NewRouter(handler.RouterConfig{
		Handler:         h,
		Health:          handler.NewHealthHandler(db, versionInfo),
		SessionManager:  sessionManager,
		Bind:            bind,
		Static:          staticFS,
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr()),
		SecurityHeaders: middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		FormRateLimiter: middleware.NewFormRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger),
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env,
			"api", cfg.APIURL, "token_store", cfg.TokenStore, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// sessionBinder selects where the bearer token lives. The session store
// gives every browser its own identity; the file and redis stores share
// one identity across all browsers.
func sessionBinder(cfg *config.Config, sm *scs.SessionManager, logger *slog.Logger) (middleware.SessionBinder, func(), error) {
	opts := []session.Option{session.WithLogger(logger)}
	if cfg.VerifyTokens() {
		opts = append(opts, session.WithVerificationKey([]byte(cfg.JWTSecret)))
	}
	noop := func() {}

	switch cfg.TokenStore {
	case config.TokenStoreFile:
		shared := session.New(session.NewFileStore(cfg.TokenFile), opts...)
		slog.Info("token store initialized", "type", "file", "path", cfg.TokenFile)
		return func(*http.Request) *session.State { return shared }, noop, nil

	case config.TokenStoreRedis:
		rs, err := session.NewRedisStore(session.RedisStoreOptions{
			URL:    cfg.RedisURL,
			Prefix: cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("initializing redis token store: %w", err)
		}
		shared := session.New(rs, opts...)
		slog.Info("token store initialized", "type", "redis")
		closeStore := func() {
			if err := rs.Close(); err != nil {
				slog.Error("error closing redis connection", "error", err)
			}
		}
		return func(*http.Request) *session.State { return shared }, closeStore, nil

	default:
		cookies := session.NewCookieSessionStore(sm)
		slog.Info("token store initialized", "type", "session")
		return func(*http.Request) *session.State { return session.New(cookies, opts...) }, noop, nil
	}
}
