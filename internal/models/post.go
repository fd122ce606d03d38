// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post is a blog article. Slug and Excerpt are derived from Title and
// Content and are never set independently.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage *string    `json:"featuredImage,omitempty"`
	AuthorID      uuid.UUID  `json:"authorId"`
	CategoryID    uuid.UUID  `json:"categoryId"`
	Status        PostStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostSummary is a post as it appears in listings: resolved author and
// category plus a comment count instead of the comment bodies.
type PostSummary struct {
	Post
	Author       AuthorSummary   `json:"author"`
	Category     CategorySummary `json:"category"`
	CommentCount int             `json:"commentCount"`
}

// PostDetail is a single post with its full, newest-first comment list.
type PostDetail struct {
	Post
	Author   AuthorSummary   `json:"author"`
	Category CategorySummary `json:"category"`
	Comments []CommentView   `json:"comments"`
}
