// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// CommentStore handles comment persistence. Comments are append-only.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.PostID, c.AuthorID, c.Content, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListByPost returns the comments of a post with their authors, newest
// first.
func (s *CommentStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cm.id, cm.post_id, cm.author_id, cm.content, cm.created_at,
		       u.username, u.avatar
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.author_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at DESC, cm.id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := []models.CommentView{}
	for rows.Next() {
		var (
			cv       models.CommentView
			username sql.NullString
		)
		if err := rows.Scan(
			&cv.ID, &cv.PostID, &cv.AuthorID, &cv.Content, &cv.CreatedAt,
			&username, &cv.Author.Avatar,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		cv.Author.ID = cv.AuthorID
		cv.Author.Username = username.String
		items = append(items, cv)
	}
	return items, rows.Err()
}
