// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category groups posts. Categories and posts are linked many-to-many.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Tag labels posts. Tags and posts are linked many-to-many.
type Tag struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// CategoryAssignment links a single category to a post.
type CategoryAssignment struct {
	PostID     ID `json:"postId"`
	CategoryID ID `json:"categoryId"`
}

// CategorySet replaces the categories of a post in one call.
type CategorySet struct {
	PostID      ID   `json:"postId"`
	CategoryIDs []ID `json:"categoryIds"`
}

// TagAssignment links a single tag to a post.
type TagAssignment struct {
	PostID ID `json:"postId"`
	TagID  ID `json:"tagId"`
}

// TagSet replaces the tags of a post in one call.
type TagSet struct {
	PostID ID   `json:"postId"`
	TagIDs []ID `json:"tagIds"`
}

// CategoryIDs returns the identifiers of the given categories.
func CategoryIDs(categories []Category) []ID {
	ids := make([]ID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// TagIDs returns the identifiers of the given tags.
func TagIDs(tags []Tag) []ID {
	ids := make([]ID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
