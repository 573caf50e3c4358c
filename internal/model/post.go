// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Post is a blog post as returned by the remote API.
type Post struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  ID     `json:"author_id"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// IsOwnedBy reports whether userID authored the post.
func (p *Post) IsOwnedBy(userID ID) bool {
	return p != nil && !userID.IsZero() && p.AuthorID == userID
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID ID     `json:"authorId"`
}

// Comment is a comment on a post.
type Comment struct {
	ID        ID     `json:"id"`
	Content   string `json:"content"`
	PostID    ID     `json:"post_id"`
	UserID    ID     `json:"user_id"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CommentInput is the payload for creating a comment.
type CommentInput struct {
	Content string `json:"content"`
	PostID  ID     `json:"postId"`
	UserID  ID     `json:"userId"`
}

// Like records that a user liked a post. Nothing client side prevents the
// same user from liking a post more than once.
type Like struct {
	ID     ID `json:"id"`
	PostID ID `json:"post_id"`
	UserID ID `json:"user_id"`
}

// LikeInput is the payload for liking a post.
type LikeInput struct {
	PostID ID `json:"postId"`
	UserID ID `json:"userId"`
}
