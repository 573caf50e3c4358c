// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogfront/internal/controller"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}<title>{{.Title}}</title>` +
			`{{with .Refresh}}<meta http-equiv="refresh" content="{{.Seconds}};url={{.URL}}">{{end}}` +
			`{{if .Flash}}<p class="{{.FlashType}}">{{.Flash}}</p>{{end}}` +
			`{{template "content" .}}{{end}}`)},
		"partials/error.html": {Data: []byte(`{{define "error"}}{{with .Status.Error}}<p class="error">{{.}}</p>{{end}}{{end}}`)},
		"pages/home.html":     {Data: []byte(`{{define "content"}}{{template "error" .}}<div>{{with .Data}}{{markdown .}}{{end}}</div>{{end}}`)},
	}
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testFS(), SessionManager: sm})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNew_RequiresPages(t *testing.T) {
	_, err := New(Config{TemplatesFS: fstest.MapFS{"layouts/base.html": {Data: []byte(`{{define "base"}}{{end}}`)}}})
	if err == nil {
		t.Fatal("New() should fail without page templates")
	}
}

func TestRender(t *testing.T) {
	r := newTestRenderer(t, nil)
	if !r.Has("home") {
		t.Fatal("home template not registered")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := r.Render(rec, req, "home", TemplateData{
		Title:  "Home",
		Data:   "**bold** <script>alert(1)</script>",
		Status: controller.Status{Error: "Failed to fetch posts."},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", body)
	}
	if strings.Contains(body, "<script>") {
		t.Errorf("script not sanitized: %s", body)
	}
	if !strings.Contains(body, "Failed to fetch posts.") {
		t.Errorf("status error missing: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)
	err := r.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "missing", TemplateData{})
	if err == nil {
		t.Fatal("Render() should fail for an unknown template")
	}
}

func TestRender_DelayedNavigationBecomesRefresh(t *testing.T) {
	r := newTestRenderer(t, nil)
	rec := httptest.NewRecorder()
	err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/register", nil), "home", TemplateData{
		Status: controller.Status{Navigation: &controller.Navigation{To: "/", Delay: 1500 * time.Millisecond}},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `content="2;url=/"`) {
		t.Errorf("refresh missing: %s", rec.Body.String())
	}
}

func TestRefreshFor(t *testing.T) {
	if RefreshFor(nil) != nil {
		t.Error("nil navigation should not refresh")
	}
	if RefreshFor(&controller.Navigation{To: "/"}) != nil {
		t.Error("immediate navigation should not refresh")
	}
	got := RefreshFor(&controller.Navigation{To: "/user", Delay: time.Second})
	if got == nil || got.URL != "/user" || got.Seconds != 1 {
		t.Errorf("RefreshFor = %+v", got)
	}
}

func TestFlash(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.SetFlash(req, "Post deleted successfully.", FlashSuccess)
		if err := r.Render(w, req, "home", TemplateData{}); err != nil {
			t.Errorf("Render: %v", err)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), `<p class="success">Post deleted successfully.</p>`) {
		t.Errorf("flash missing: %s", rec.Body.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello..."},
		{"multibyte", "héllo wörld", 7, "héllo w..."},
		{"no limit", "hello", 0, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	got := Excerpt("# Title\n\nSome *emphasis* and [a link](http://x).", 100)
	want := "Title Some emphasis and a link."
	if got != want {
		t.Errorf("Excerpt = %q, want %q", got, want)
	}
}
