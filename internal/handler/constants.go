// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the post list.
	RouteRoot = "/"
	// RouteRegister is the registration page.
	RouteRegister = "/register"
	// RouteLogin is the login page.
	RouteLogin = "/login"
	// RouteLogout ends the session.
	RouteLogout = "/logout"
	// RoutePost is the post detail page.
	RoutePost = "/post/{id}"
	// RoutePostComments receives new comments.
	RoutePostComments = RoutePost + "/comments"
	// RoutePostLike receives likes.
	RoutePostLike = RoutePost + "/like"
	// RoutePostDelete deletes a post.
	RoutePostDelete = RoutePost + "/delete"
	// RoutePosts is the new post page.
	RoutePosts = "/posts"
	// RoutePostsID is the edit post page.
	RoutePostsID = "/posts/{id}"
	// RouteCategories is the categories page.
	RouteCategories = "/categories"
	// RouteTags is the tags page.
	RouteTags = "/tags"
	// RouteSearch is the search results page.
	RouteSearch = "/search"
	// RouteUser is the profile page.
	RouteUser = "/user"
	// RouteUserUpdate is the profile edit page.
	RouteUserUpdate = "/users/{id}/update"
	// RouteHealth is the health check.
	RouteHealth = "/healthz"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// Page template names.
const (
	TemplateHome       = "home"
	TemplateRegister   = "register"
	TemplateLogin      = "login"
	TemplatePost       = "post"
	TemplateCreatePost = "create_post"
	TemplateUpdatePost = "update_post"
	TemplateBrowse     = "browse"
	TemplateSearch     = "search"
	TemplateUser       = "user"
	TemplateUpdateUser = "update_user"
	TemplateNotFound   = "not_found"
)

// postPath returns the detail page location of a post.
func postPath(id string) string {
	return "/post/" + id
}
