// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/olegiv/blogfront/internal/apiclient"
	"github.com/olegiv/blogfront/internal/model"
)

// Reply is a canned response for a route.
type Reply struct {
	Status int
	Body   any
}

// Request is a request received by FakeAPI.
type Request struct {
	Pattern string
	Auth    string
	Query   string
	Body    json.RawMessage
}

// FakeAPI is an in-memory stand-in for the remote blog API. Every route
// counts its calls; any route can be made to fail with FailWith.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	requests []Request
	failures map[string]Reply
	nextID   int

	Posts          []model.Post
	Comments       map[model.ID][]model.Comment
	Likes          map[model.ID][]model.Like
	Categories     []model.Category
	Tags           []model.Tag
	PostCategories map[model.ID][]model.Category
	PostTags       map[model.ID][]model.Tag
	Users          map[model.ID]model.User
	SearchResults  []model.Post
	// LoginToken is returned by a successful login.
	LoginToken string
}

// NewFakeAPI starts a fake API server that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		calls:          make(map[string]int),
		failures:       make(map[string]Reply),
		nextID:         100,
		Comments:       make(map[model.ID][]model.Comment),
		Likes:          make(map[model.ID][]model.Like),
		PostCategories: make(map[model.ID][]model.Category),
		PostTags:       make(map[model.ID][]model.Tag),
		Users:          make(map[model.ID]model.User),
	}

	mux := http.NewServeMux()
	f.routes(mux)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the API base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL + "/api"
}

// Client returns a request client that sends token as bearer.
func (f *FakeAPI) Client(t *testing.T, token string) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Config{
		BaseURL: f.URL(),
		Tokens: apiclient.TokenFunc(func(context.Context) (string, error) {
			return token, nil
		}),
		Logger: TestLoggerSilent(),
	})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return c
}

// FailWith makes the route answer with status and body.
func (f *FakeAPI) FailWith(pattern string, status int, body any) {
	f.ReplyWith(pattern, status, body)
}

// ReplyWith overrides the route's answer without touching the fake's data.
func (f *FakeAPI) ReplyWith(pattern string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[pattern] = Reply{Status: status, Body: body}
}

// Calls returns how many times the route was called.
func (f *FakeAPI) Calls(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pattern]
}

// TotalCalls returns the number of calls across all routes.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns the requests made to the route, oldest first.
func (f *FakeAPI) Requests(pattern string) []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Request
	for _, r := range f.requests {
		if r.Pattern == pattern {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeAPI) newID() model.ID {
	f.nextID++
	return model.ID(strconv.Itoa(f.nextID))
}

func (f *FakeAPI) handle(mux *http.ServeMux, pattern string, fn func(w http.ResponseWriter, r *http.Request, body json.RawMessage)) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.calls[pattern]++
		f.requests = append(f.requests, Request{
			Pattern: pattern,
			Auth:    r.Header.Get("Authorization"),
			Query:   r.URL.RawQuery,
			Body:    raw,
		})
		reply, failing := f.failures[pattern]
		f.mu.Unlock()

		if failing {
			writeJSON(w, reply.Status, reply.Body)
			return
		}
		fn(w, r, raw)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (f *FakeAPI) routes(mux *http.ServeMux) {
	ok := func(v func(r *http.Request, body json.RawMessage) any) func(http.ResponseWriter, *http.Request, json.RawMessage) {
		return func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
			f.mu.Lock()
			out := v(r, body)
			f.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		}
	}
	id := func(r *http.Request) model.ID { return model.ID(r.PathValue("id")) }

	f.handle(mux, "POST /api/users/register", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "User registered"}
	}))
	f.handle(mux, "POST /api/users/login", ok(func(*http.Request, json.RawMessage) any {
		return model.LoginResult{Token: f.LoginToken, Message: "Login successful"}
	}))
	f.handle(mux, "POST /api/users/logout", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Logged out"}
	}))
	f.handle(mux, "GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request, _ json.RawMessage) {
		f.mu.Lock()
		u, found := f.Users[id(r)]
		f.mu.Unlock()
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
			return
		}
		writeJSON(w, http.StatusOK, u)
	})
	f.handle(mux, "PUT /api/users/{id}/update", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "User updated"}
	}))

	f.handle(mux, "GET /api/posts", ok(func(*http.Request, json.RawMessage) any { return f.Posts }))
	f.handle(mux, "GET /api/posts/{id}", func(w http.ResponseWriter, r *http.Request, _ json.RawMessage) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.Posts {
			if p.ID == id(r) {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
	})
	f.handle(mux, "POST /api/posts", ok(func(_ *http.Request, body json.RawMessage) any {
		var in model.PostInput
		_ = json.Unmarshal(body, &in)
		p := model.Post{ID: f.newID(), Title: in.Title, Content: in.Content, AuthorID: in.AuthorID}
		f.Posts = append(f.Posts, p)
		return p
	}))
	f.handle(mux, "PUT /api/posts/{id}", ok(func(r *http.Request, body json.RawMessage) any {
		var in model.PostInput
		_ = json.Unmarshal(body, &in)
		return model.Post{ID: id(r), Title: in.Title, Content: in.Content, AuthorID: in.AuthorID}
	}))
	f.handle(mux, "DELETE /api/posts/{id}", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Post deleted"}
	}))
	f.handle(mux, "GET /api/posts/of-category", ok(func(*http.Request, json.RawMessage) any { return f.Posts }))
	f.handle(mux, "GET /api/posts/of-tag", ok(func(*http.Request, json.RawMessage) any { return f.Posts }))
	f.handle(mux, "GET /api/posts/search", ok(func(*http.Request, json.RawMessage) any { return f.SearchResults }))

	f.handle(mux, "POST /api/posts/comment", ok(func(_ *http.Request, body json.RawMessage) any {
		var in model.CommentInput
		_ = json.Unmarshal(body, &in)
		c := model.Comment{ID: f.newID(), Content: in.Content, PostID: in.PostID, UserID: in.UserID}
		f.Comments[in.PostID] = append(f.Comments[in.PostID], c)
		return c
	}))
	f.handle(mux, "GET /api/posts/{id}/comments", ok(func(r *http.Request, _ json.RawMessage) any { return f.Comments[id(r)] }))
	f.handle(mux, "GET /api/posts/{id}/likes", ok(func(r *http.Request, _ json.RawMessage) any { return f.Likes[id(r)] }))
	f.handle(mux, "POST /api/posts/add-like", ok(func(_ *http.Request, body json.RawMessage) any {
		var in model.LikeInput
		_ = json.Unmarshal(body, &in)
		l := model.Like{ID: f.newID(), PostID: in.PostID, UserID: in.UserID}
		f.Likes[in.PostID] = append(f.Likes[in.PostID], l)
		return l
	}))

	f.handle(mux, "GET /api/posts/categories", ok(func(*http.Request, json.RawMessage) any { return f.Categories }))
	f.handle(mux, "POST /api/posts/add-category", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Category added"}
	}))
	f.handle(mux, "PUT /api/posts/update-categories", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Categories updated"}
	}))
	f.handle(mux, "GET /api/posts/{id}/categories", ok(func(r *http.Request, _ json.RawMessage) any { return f.PostCategories[id(r)] }))
	f.handle(mux, "GET /api/posts/tags", ok(func(*http.Request, json.RawMessage) any { return f.Tags }))
	f.handle(mux, "POST /api/posts/add-tag", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Tag added"}
	}))
	f.handle(mux, "PUT /api/posts/update-tags", ok(func(*http.Request, json.RawMessage) any {
		return map[string]string{"message": "Tags updated"}
	}))
	f.handle(mux, "GET /api/posts/{id}/tags", ok(func(r *http.Request, _ json.RawMessage) any { return f.PostTags[id(r)] }))
}
