// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient is the single configured client for the remote blog API.
// Every request is routed through one base URL and carries the bearer token
// of the current session when one is stored.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// Client configuration defaults.
const (
	DefaultBaseURL   = "http://localhost:5000/api"
	DefaultUserAgent = "blogfront/1.0"
	MaxResponseLen   = 4 << 20 // Maximum response body read from the API (4MB)
)

// TokenSource supplies the persisted bearer token. An empty token means the
// request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// IncludeCredentials keeps cookies set by the API in a jar and sends them
	// back. Only safe when the process acts for a single identity.
	IncludeCredentials bool
	Tokens             TokenSource
	Logger             *slog.Logger
	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client talks to the remote blog API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
	logger    *slog.Logger
}

// Response is a successful API response.
type Response[T any] struct {
	Status int
	Data   T
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("API base URL must use http or https, got %q", cfg.BaseURL)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if cfg.IncludeCredentials && httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		// Copy so a caller-supplied client is left untouched.
		withJar := *httpClient
		withJar.Jar = jar
		httpClient = &withJar
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		tokens:    cfg.Tokens,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}, nil
}

// WithTokens returns a copy of the client that reads bearer tokens from ts.
// The copy shares the underlying HTTP client and its connection pool.
func (c *Client) WithTokens(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// endpoint resolves an API path against the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// authorize is the outbound interceptor: it attaches the stored token, if
// any, as a bearer credential.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("reading session token failed, sending request unauthenticated",
			"error", err, "path", req.URL.Path)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do performs a request and decodes a JSON response into T.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*Response[T], error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(method, path, resp.StatusCode, raw)
	}

	out := &Response[T]{Status: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	// Raw responses are kept as sent, even when the body is not JSON.
	if dst, ok := any(&out.Data).(*json.RawMessage); ok {
		*dst = append(json.RawMessage(nil), raw...)
		return out, nil
	}
	if err := json.Unmarshal(raw, &out.Data); err != nil {
		return nil, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return out, nil
}

// StatusOf returns the HTTP status carried by err, or 0 when the request
// never received a response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// doList performs a request whose successful body should be a JSON array.
// A 2xx body that is not an array (the API answers some empty listings with
// an object) yields an empty list instead of a decode error.
func doList[E any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*Response[[]E], error) {
	resp, err := do[json.RawMessage](ctx, c, method, path, query, body)
	if err != nil {
		return nil, err
	}
	out := &Response[[]E]{Status: resp.Status, Data: []E{}}
	raw := bytes.TrimSpace(resp.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out.Data); err != nil {
		return nil, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return out, nil
}
