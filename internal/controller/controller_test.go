// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/session"
	"github.com/olegiv/blogfront/internal/testutil"
)

type fakeSession struct {
	mu      sync.Mutex
	snap    session.Snapshot
	logins  []string
	logouts int
}

func loggedInAs(id model.ID) *fakeSession {
	return &fakeSession{snap: session.Snapshot{LoggedIn: true, UserID: id}}
}

func (s *fakeSession) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *fakeSession) Login(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return session.ErrInvalidToken
	}
	s.logins = append(s.logins, token)
	s.snap = session.Snapshot{LoggedIn: true, UserID: "7"}
	return nil
}

func (s *fakeSession) Logout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logouts++
	s.snap = session.Snapshot{}
	return nil
}

func newDeps(t *testing.T, sess *fakeSession) (Deps, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	if sess == nil {
		sess = &fakeSession{}
	}
	return Deps{
		API:     api.Client(t, "tok"),
		Session: sess,
		Logger:  testutil.TestLoggerSilent(),
	}, api
}

func seedPost(api *testutil.FakeAPI, id, author model.ID) {
	api.Posts = append(api.Posts, model.Post{ID: id, Title: "Title " + id.String(), Content: "Body", AuthorID: author})
}

func TestPage_PhaseSequence(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d, api := newDeps(t, nil)
		seedPost(api, "1", "7")

		h := NewHome(d)
		var phases []Phase
		h.Observe(func(p Phase) { phases = append(phases, p) })
		h.Load(context.Background())

		assert.Equal(t, []Phase{PhaseLoading, PhaseSuccess, PhaseIdle}, phases)
		assert.False(t, h.Loading())
	})

	t.Run("failure", func(t *testing.T) {
		d, api := newDeps(t, nil)
		api.FailWith("GET /api/posts", http.StatusInternalServerError, nil)

		h := NewHome(d)
		var phases []Phase
		h.Observe(func(p Phase) { phases = append(phases, p) })
		h.Load(context.Background())

		assert.Equal(t, []Phase{PhaseLoading, PhaseError, PhaseIdle}, phases)
		assert.Equal(t, "Failed to fetch posts.", h.Status().Error)
		assert.False(t, h.Loading(), "loading must clear on failure")
	})
}

func TestPage_UnmountDropsLateResults(t *testing.T) {
	d, api := newDeps(t, nil)
	seedPost(api, "1", "7")

	h := NewHome(d)
	h.Unmount()
	h.Load(context.Background())

	assert.Equal(t, 1, api.Calls("GET /api/posts"), "in-flight calls are not cancelled")
	assert.Empty(t, h.View().Posts)
}

func TestHome_LikeCounts(t *testing.T) {
	d, api := newDeps(t, nil)
	seedPost(api, "1", "7")
	seedPost(api, "2", "7")
	api.Likes["1"] = []model.Like{{ID: "10"}, {ID: "11"}}

	h := NewHome(d)
	h.Load(context.Background())

	posts := h.View().Posts
	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].Likes)
	assert.Equal(t, 0, posts[1].Likes)
	assert.Equal(t, 2, api.Calls("GET /api/posts/{id}/likes"))
}

func TestHome_LikeCountsBeyondFetchLimit(t *testing.T) {
	d, api := newDeps(t, nil)
	n := maxLikeFetches*2 + 3
	for i := 1; i <= n; i++ {
		id := model.ID(strconv.Itoa(i))
		seedPost(api, id, "7")
		api.Likes[id] = make([]model.Like, i)
	}

	h := NewHome(d)
	h.Load(context.Background())

	posts := h.View().Posts
	require.Len(t, posts, n)
	for i, card := range posts {
		assert.Equal(t, i+1, card.Likes, "post %s", card.Post.ID)
	}
	assert.Equal(t, n, api.Calls("GET /api/posts/{id}/likes"))
}

func TestHome_LikeFailureKeepsPosts(t *testing.T) {
	d, api := newDeps(t, nil)
	seedPost(api, "1", "7")
	api.FailWith("GET /api/posts/{id}/likes", http.StatusInternalServerError, nil)

	h := NewHome(d)
	h.Load(context.Background())

	require.Len(t, h.View().Posts, 1)
	assert.Empty(t, h.Status().Error)
}

func TestSearch_MinimumQueryLength(t *testing.T) {
	tests := []struct {
		query     string
		wantCalls int
		wantErr   string
	}{
		{query: "ab", wantCalls: 0, wantErr: MsgQueryTooShort},
		{query: "  ab  ", wantCalls: 0, wantErr: MsgQueryTooShort},
		{query: "abc", wantCalls: 1},
		{query: "héé", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			d, api := newDeps(t, nil)
			api.SearchResults = []model.Post{{ID: "1", Title: "abc"}}

			c := NewSearch(d)
			c.Load(context.Background(), tt.query)

			assert.Equal(t, tt.wantCalls, api.TotalCalls())
			assert.Equal(t, tt.wantErr, c.Status().Error)
			if tt.wantErr != "" {
				assert.ErrorIs(t, c.Status().Cause, ErrQueryTooShort)
			} else {
				assert.Len(t, c.View().Results, 1)
			}
		})
	}
}

func TestSearch_Failure(t *testing.T) {
	d, api := newDeps(t, nil)
	api.FailWith("GET /api/posts/search", http.StatusInternalServerError, nil)

	c := NewSearch(d)
	c.Load(context.Background(), "golang")

	assert.Equal(t, "Error fetching search results. Please try again later.", c.Status().Error)
	assert.Equal(t, "query=golang", api.Requests("GET /api/posts/search")[0].Query)
}

func TestPost_LoadIsAllOrNothing(t *testing.T) {
	d, api := newDeps(t, nil)
	seedPost(api, "1", "7")
	api.FailWith("GET /api/posts/{id}/tags", http.StatusInternalServerError, nil)

	c := NewPost(d, "1")
	c.Load(context.Background())

	v := c.View()
	assert.Nil(t, v.Post)
	assert.Empty(t, v.Comments)
	assert.Equal(t, "Failed to fetch data.", c.Status().Error)
	assert.Zero(t, api.Calls("GET /api/posts/{id}/likes"), "likes are fetched only after the joined load")
}

func TestPost_Load(t *testing.T) {
	d, api := newDeps(t, nil)
	seedPost(api, "1", "7")
	api.Comments["1"] = []model.Comment{{ID: "5", Content: "hi"}}
	api.PostCategories["1"] = []model.Category{{ID: "2", Name: "Go"}}
	api.PostTags["1"] = []model.Tag{{ID: "3", Name: "web"}}
	api.Likes["1"] = []model.Like{{ID: "9"}}

	c := NewPost(d, "1")
	c.Load(context.Background())

	v := c.View()
	require.NotNil(t, v.Post)
	assert.Equal(t, "Title 1", v.Post.Title)
	assert.Len(t, v.Comments, 1)
	assert.Len(t, v.Categories, 1)
	assert.Len(t, v.Tags, 1)
	assert.Len(t, v.Likes, 1)
}

func TestPost_SubmitComment(t *testing.T) {
	t.Run("logged out makes no call", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewPost(d, "1")
		c.SubmitComment(context.Background(), "hello")

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "You must be logged in to comment.", c.Status().Error)
		assert.ErrorIs(t, c.Status().Cause, ErrNotLoggedIn)
	})

	t.Run("blank comment makes no call", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewPost(d, "1")
		c.SubmitComment(context.Background(), "   ")

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "Comment content cannot be empty.", c.Status().Error)
	})

	t.Run("success re-fetches comments", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewPost(d, "1")
		c.SubmitComment(context.Background(), "  nice post ")

		assert.Equal(t, 1, api.Calls("POST /api/posts/comment"))
		assert.Equal(t, 1, api.Calls("GET /api/posts/{id}/comments"))
		require.Len(t, c.View().Comments, 1)
		assert.Equal(t, "nice post", c.View().Comments[0].Content)
		assert.Empty(t, c.View().Draft)

		var body map[string]any
		require.NoError(t, json.Unmarshal(api.Requests("POST /api/posts/comment")[0].Body, &body))
		assert.Equal(t, map[string]any{"content": "nice post", "postId": float64(1), "userId": float64(7)}, body)
	})

	t.Run("non-object create response still counts as created", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.Comments["1"] = []model.Comment{{ID: "5", Content: "hello", PostID: "1", UserID: "7"}}
		api.ReplyWith("POST /api/posts/comment", http.StatusCreated, "Comment created")
		c := NewPost(d, "1")
		c.SubmitComment(context.Background(), "hello")

		assert.Empty(t, c.Status().Error)
		assert.Equal(t, 1, api.Calls("GET /api/posts/{id}/comments"))
		require.Len(t, c.View().Comments, 1)
		assert.Empty(t, c.View().Draft)
	})

	t.Run("failure keeps draft", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.FailWith("POST /api/posts/comment", http.StatusInternalServerError, nil)
		c := NewPost(d, "1")
		c.SubmitComment(context.Background(), "draft")

		assert.Equal(t, "Failed to create comment.", c.Status().Error)
		assert.Equal(t, "draft", c.View().Draft)
		assert.Zero(t, api.Calls("GET /api/posts/{id}/comments"))
	})
}

func TestPost_Like(t *testing.T) {
	t.Run("logged out makes no call", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewPost(d, "1")
		c.Like(context.Background())

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "Please log in to like posts.", c.Status().Error)
	})

	t.Run("success appends exactly one like", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "8")
		api.Likes["1"] = []model.Like{{ID: "50", PostID: "1", UserID: "9"}}

		c := NewPost(d, "1")
		c.Load(context.Background())
		require.Len(t, c.View().Likes, 1)

		c.Like(context.Background())
		likes := c.View().Likes
		require.Len(t, likes, 2)
		assert.Equal(t, model.ID("7"), likes[1].UserID)
	})

	t.Run("repeat likes are kept", func(t *testing.T) {
		d, _ := newDeps(t, loggedInAs("7"))
		c := NewPost(d, "1")
		c.Like(context.Background())
		c.Like(context.Background())
		assert.Len(t, c.View().Likes, 2)
	})

	t.Run("failure leaves list unchanged", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "8")
		api.Likes["1"] = []model.Like{{ID: "50"}}

		c := NewPost(d, "1")
		c.Load(context.Background())
		api.FailWith("POST /api/posts/add-like", http.StatusInternalServerError, nil)
		c.Like(context.Background())

		assert.Len(t, c.View().Likes, 1)
		assert.Equal(t, "Failed to like the post. Please try again.", c.Status().Error)
	})
}

func TestPost_CanEditAndDelete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "7")

		c := NewPost(d, "1")
		c.Delete(context.Background())

		assert.True(t, c.CanEdit())
		assert.Equal(t, 1, api.Calls("DELETE /api/posts/{id}"))
		assert.Equal(t, "Post deleted successfully.", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/"}, c.Status().Navigation)
	})

	t.Run("other user", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("8"))
		seedPost(api, "1", "7")

		c := NewPost(d, "1")
		c.Delete(context.Background())

		assert.False(t, c.CanEdit())
		assert.Zero(t, api.Calls("DELETE /api/posts/{id}"))
		assert.ErrorIs(t, c.Status().Cause, ErrNotOwner)
	})

	t.Run("remote failure", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "7")
		api.FailWith("DELETE /api/posts/{id}", http.StatusInternalServerError, nil)

		c := NewPost(d, "1")
		c.Delete(context.Background())

		assert.Equal(t, "An error occurred while deleting the post.", c.Status().Error)
		assert.Nil(t, c.Status().Navigation)
	})
}

func TestCreatePost_Submit(t *testing.T) {
	form := PostForm{
		Title:       "Hello",
		Content:     "World",
		CategoryIDs: []model.ID{"1", "2"},
		TagIDs:      []model.ID{"3"},
	}

	t.Run("logged out makes no call", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewCreatePost(d)
		c.Submit(context.Background(), form)

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "User not logged in. Please log in to create a post.", c.Status().Error)
	})

	t.Run("creates then associates", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewCreatePost(d)
		c.Submit(context.Background(), form)

		assert.Equal(t, 1, api.Calls("POST /api/posts"))
		assert.Equal(t, 2, api.Calls("POST /api/posts/add-category"))
		assert.Equal(t, 1, api.Calls("POST /api/posts/add-tag"))
		assert.Equal(t, "Post created successfully!", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/"}, c.Status().Navigation)
		assert.Equal(t, PostForm{}, c.View().Form)

		var body map[string]any
		require.NoError(t, json.Unmarshal(api.Requests("POST /api/posts")[0].Body, &body))
		assert.Equal(t, float64(7), body["authorId"])
	})

	t.Run("partial association failure is reported", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.FailWith("POST /api/posts/add-tag", http.StatusInternalServerError, nil)
		c := NewCreatePost(d)
		c.Submit(context.Background(), form)

		assert.Equal(t, 2, api.Calls("POST /api/posts/add-category"))
		assert.Equal(t, "Post created, but some categories or tags could not be assigned.", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/"}, c.Status().Navigation)
	})

	t.Run("create failure", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.FailWith("POST /api/posts", http.StatusBadRequest, map[string]string{"message": "Title taken"})
		c := NewCreatePost(d)
		c.Submit(context.Background(), form)

		assert.Equal(t, "Error creating post: Title taken", c.Status().Error)
		assert.Zero(t, api.Calls("POST /api/posts/add-category"))
		assert.Equal(t, form, c.View().Form, "form is kept for another attempt")
	})

	t.Run("missing title", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewCreatePost(d)
		c.Submit(context.Background(), PostForm{Content: "x"})
		assert.Zero(t, api.TotalCalls())
	})
}

func TestCreatePost_LoadIndependentLists(t *testing.T) {
	d, api := newDeps(t, nil)
	api.Tags = []model.Tag{{ID: "1", Name: "go"}}
	api.FailWith("GET /api/posts/categories", http.StatusInternalServerError, nil)

	c := NewCreatePost(d)
	c.Load(context.Background())

	assert.Len(t, c.View().Tags, 1, "tags load despite the category failure")
	assert.Equal(t, "Failed to fetch categories.", c.Status().Error)
}

func TestUpdatePost(t *testing.T) {
	t.Run("logged out is redirected without calls", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewUpdatePost(d, "1")
		c.Load(context.Background())

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "/login", c.Status().Navigation.To)
	})

	t.Run("load pre-fills form", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "7")
		api.PostCategories["1"] = []model.Category{{ID: "4", Name: "Go"}}
		api.PostTags["1"] = []model.Tag{{ID: "5", Name: "web"}}

		c := NewUpdatePost(d, "1")
		c.Load(context.Background())

		assert.Equal(t, 5, api.TotalCalls())
		form := c.View().Form
		assert.Equal(t, "Title 1", form.Title)
		assert.Equal(t, []model.ID{"4"}, form.CategoryIDs)
		assert.Equal(t, []model.ID{"5"}, form.TagIDs)
		assert.Empty(t, c.Status().Error)
	})

	t.Run("submit updates and navigates after delay", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "7")

		c := NewUpdatePost(d, "1")
		c.Submit(context.Background(), PostForm{Title: "New", Content: "Body", CategoryIDs: []model.ID{"4"}})

		assert.Equal(t, 1, api.Calls("PUT /api/posts/{id}"))
		assert.Equal(t, 1, api.Calls("PUT /api/posts/update-categories"))
		assert.Equal(t, 1, api.Calls("PUT /api/posts/update-tags"))
		assert.Equal(t, "Post updated successfully!", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/post/1", Delay: 1500 * time.Millisecond}, c.Status().Navigation)

		var body map[string]any
		require.NoError(t, json.Unmarshal(api.Requests("PUT /api/posts/update-tags")[0].Body, &body))
		assert.Equal(t, []any{}, body["tagIds"])
	})

	t.Run("submit by other user is refused", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("8"))
		seedPost(api, "1", "7")

		c := NewUpdatePost(d, "1")
		c.Submit(context.Background(), PostForm{Title: "New", Content: "Body"})

		assert.Zero(t, api.Calls("PUT /api/posts/{id}"))
		assert.ErrorIs(t, c.Status().Cause, ErrNotOwner)
	})

	t.Run("association failure", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		seedPost(api, "1", "7")
		api.FailWith("PUT /api/posts/update-tags", http.StatusInternalServerError, nil)

		c := NewUpdatePost(d, "1")
		c.Submit(context.Background(), PostForm{Title: "New", Content: "Body"})

		assert.Equal(t, "Error updating post.", c.Status().Error)
		assert.Nil(t, c.Status().Navigation)
	})
}

func TestBrowse(t *testing.T) {
	d, api := newDeps(t, nil)
	api.Categories = []model.Category{{ID: "1", Name: "Go"}}
	api.Tags = []model.Tag{{ID: "2", Name: "web"}}
	seedPost(api, "3", "7")

	cats := NewCategories(d)
	cats.Load(context.Background())
	assert.Len(t, cats.View().Items, 1)

	cats.Select(context.Background(), "Go")
	assert.Equal(t, "Go", cats.View().Selected)
	assert.Len(t, cats.View().Posts, 1)
	assert.Equal(t, "categoryName=Go", api.Requests("GET /api/posts/of-category")[0].Query)

	tags := NewTags(d)
	tags.Select(context.Background(), "web")
	assert.Equal(t, "tagName=web", api.Requests("GET /api/posts/of-tag")[0].Query)

	api.FailWith("GET /api/posts/tags", http.StatusInternalServerError, nil)
	tags.Load(context.Background())
	assert.Equal(t, "Failed to fetch tags.", tags.Status().Error)
	assert.Equal(t, "tag", tags.Noun())
}

func TestBrowse_BlankSelectionMakesNoCall(t *testing.T) {
	d, api := newDeps(t, nil)
	c := NewTags(d)
	c.Select(context.Background(), " ")
	assert.Zero(t, api.TotalCalls())
	assert.Empty(t, c.View().Selected)
}

func TestRegister_Submit(t *testing.T) {
	t.Run("invalid input makes no call", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewRegister(d)
		c.Submit(context.Background(), model.Registration{Username: "ab", Email: "bad", Password: "weak"})

		assert.Zero(t, api.TotalCalls())
		errs := c.View().Errors
		assert.Len(t, errs, 3)
		assert.Equal(t, "ab", c.View().Form.Username)
		assert.Empty(t, c.View().Form.Password, "password is never echoed")
	})

	t.Run("success", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewRegister(d)
		c.Submit(context.Background(), model.Registration{Username: "alice", Email: "a@b.co", Password: "Secret1"})

		assert.Equal(t, 1, api.Calls("POST /api/users/register"))
		assert.Equal(t, "Registration successful!", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/", Delay: DefaultRedirectDelay}, c.Status().Navigation)
	})

	t.Run("remote message shown verbatim", func(t *testing.T) {
		d, api := newDeps(t, nil)
		api.FailWith("POST /api/users/register", http.StatusConflict, map[string]string{"message": "Username already exists"})
		c := NewRegister(d)
		c.Submit(context.Background(), model.Registration{Username: "alice", Email: "a@b.co", Password: "Secret1"})

		assert.Equal(t, "Username already exists", c.Status().Error)
	})
}

func TestLogin_Submit(t *testing.T) {
	t.Run("success stores token", func(t *testing.T) {
		sess := &fakeSession{}
		d, api := newDeps(t, sess)
		api.LoginToken = "jwt"

		c := NewLogin(d)
		c.Submit(context.Background(), model.Credentials{Username: "alice", Password: "Secret1"})

		assert.Equal(t, []string{"jwt"}, sess.logins)
		assert.Equal(t, "Login successful", c.Status().Message)
		assert.Equal(t, &Navigation{To: "/"}, c.Status().Navigation)
	})

	t.Run("rejected", func(t *testing.T) {
		d, api := newDeps(t, nil)
		api.FailWith("POST /api/users/login", http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})

		c := NewLogin(d)
		c.Submit(context.Background(), model.Credentials{Username: "alice", Password: "x"})

		assert.Equal(t, "Invalid credentials", c.Status().Error)
		assert.Nil(t, c.Status().Navigation)
	})

	t.Run("invalid token", func(t *testing.T) {
		sess := &fakeSession{}
		d, _ := newDeps(t, sess)

		c := NewLogin(d)
		c.Submit(context.Background(), model.Credentials{Username: "alice", Password: "x"})

		assert.ErrorIs(t, c.Status().Cause, session.ErrInvalidToken)
		assert.False(t, sess.Snapshot().LoggedIn)
	})
}

func TestHeader(t *testing.T) {
	sess := loggedInAs("7")
	d, api := newDeps(t, sess)

	h := NewHeader(d)
	assert.True(t, h.View().LoggedIn)

	h.Logout(context.Background())
	assert.Equal(t, 1, api.Calls("POST /api/users/logout"))
	assert.Equal(t, 1, sess.logouts)
	assert.False(t, h.View().LoggedIn)

	_, err := h.SearchRedirect("go")
	assert.ErrorIs(t, err, ErrQueryTooShort)

	loc, err := h.SearchRedirect("  go lang ")
	require.NoError(t, err)
	assert.Equal(t, "/search?query=go+lang", loc)
}

func TestHeader_LogoutSurvivesRemoteFailure(t *testing.T) {
	sess := loggedInAs("7")
	d, api := newDeps(t, sess)
	api.FailWith("POST /api/users/logout", http.StatusInternalServerError, nil)

	NewHeader(d).Logout(context.Background())
	assert.Equal(t, 1, sess.logouts)
}

func TestUser_Load(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		d, api := newDeps(t, nil)
		c := NewUser(d)
		c.Load(context.Background())
		assert.Zero(t, api.TotalCalls())
		assert.Nil(t, c.View().User)
	})

	t.Run("logged in", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.Users["7"] = model.User{ID: "7", Username: "alice", Email: "a@b.co"}
		c := NewUser(d)
		c.Load(context.Background())
		require.NotNil(t, c.View().User)
		assert.Equal(t, "alice", c.View().User.Username)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("other user is sent to login", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("8"))
		c := NewUpdateUser(d, "7")
		c.Load(context.Background())

		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "/login", c.Status().Navigation.To)
	})

	t.Run("load pre-fills", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		api.Users["7"] = model.User{ID: "7", Username: "alice", Email: "a@b.co"}
		c := NewUpdateUser(d, "7")
		c.Load(context.Background())
		assert.Equal(t, model.UserUpdate{Username: "alice", Email: "a@b.co"}, c.View().Form)
	})

	t.Run("empty form", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewUpdateUser(d, "7")
		c.Submit(context.Background(), model.UserUpdate{})
		assert.Zero(t, api.TotalCalls())
		assert.Equal(t, "Please fill at least one field to update.", c.Status().Error)
	})

	t.Run("only sent fields are validated", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewUpdateUser(d, "7")
		c.Submit(context.Background(), model.UserUpdate{Email: "new@example.com"})

		require.Equal(t, 1, api.Calls("PUT /api/users/{id}/update"))
		assert.JSONEq(t, `{"email":"new@example.com"}`, string(api.Requests("PUT /api/users/{id}/update")[0].Body))
		assert.Equal(t, "User updated successfully!", c.Status().Message)
		assert.Equal(t, "/user", c.Status().Navigation.To)
	})

	t.Run("invalid field", func(t *testing.T) {
		d, api := newDeps(t, loggedInAs("7"))
		c := NewUpdateUser(d, "7")
		c.Submit(context.Background(), model.UserUpdate{Password: "short"})
		assert.Zero(t, api.TotalCalls())
		assert.NotEmpty(t, c.View().Errors.Get("password"))
	})

	errorCases := []struct {
		name string
		body any
		want string
	}{
		{name: "string body", body: "Email already in use", want: "Email already in use"},
		{name: "field errors", body: map[string]any{"errors": map[string]string{"email": "taken"}}, want: `{"email":"taken"}`},
		{name: "other", body: map[string]string{"message": "nope"}, want: "An error occurred while updating."},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			d, api := newDeps(t, loggedInAs("7"))
			api.FailWith("PUT /api/users/{id}/update", http.StatusBadRequest, tt.body)
			c := NewUpdateUser(d, "7")
			c.Submit(context.Background(), model.UserUpdate{Username: "alice2"})
			assert.Equal(t, tt.want, c.Status().Error)
		})
	}
}
