// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Repository lookups return (nil, nil) when the row does not exist; a
// non-nil error always means the store itself failed.

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	// Update overwrites every mutable column of p in a single statement.
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListPublished returns one page of published posts matching q and the
	// total number of matches, ordered by created_at DESC, id ASC.
	ListPublished(ctx context.Context, q PostQuery) ([]models.PostSummary, int, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// Create returns an error wrapping ErrDuplicate if the name or slug is taken.
	Create(ctx context.Context, c *models.Category) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	// ListByPost returns the comments of a post newest first.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentView, error)
}

// UserRepository reads users owned by the identity layer.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenVerifier checks an opaque bearer credential and returns the user
// it was issued to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}
