// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/blog"
	"inkpress/internal/models"
)

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, content, excerpt, featured_image, author_id,
	category_id, status, created_at, updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.AuthorID, &p.CategoryID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post.
func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		p.AuthorID, p.CategoryID, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Update writes every mutable column of p in one statement. author_id
// and created_at are never changed.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4,
			featured_image = $5, category_id = $6, status = $7, updated_at = $8
		WHERE id = $9
	`, p.Title, p.Slug, p.Content, p.Excerpt,
		p.FeaturedImage, p.CategoryID, p.Status, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Its comments are kept.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// publishedWhere builds the WHERE clause and arguments for the published
// listing. Placeholders are numbered from 1.
func publishedWhere(f blog.ListFilter) (string, []any) {
	conds := []string{`p.status = 'published'`}
	var args []any
	if f.Search != "" {
		args = append(args, blog.LikePattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(p.title ILIKE $%d ESCAPE '\' OR p.content ILIKE $%d ESCAPE '\')`, n, n))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf(`p.category_id = $%d`, len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// ListPublished returns one page of published posts with author,
// category and comment count, plus the number of posts matching the
// filter. The page is ordered by created_at DESC, id ASC.
func (s *PostStore) ListPublished(ctx context.Context, q blog.PostQuery) ([]models.PostSummary, int, error) {
	where, args := publishedWhere(q.Filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published posts: %w", err)
	}

	n := len(args)
	pageArgs := append(args[:n:n], q.Limit, int64(q.Offset))
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image, p.author_id,
		       p.category_id, p.status, p.created_at, p.updated_at,
		       u.username, u.avatar, c.name, c.slug,
		       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $%d OFFSET $%d
	`, where, n+1, n+2), pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	items := []models.PostSummary{}
	for rows.Next() {
		var (
			ps           models.PostSummary
			username     sql.NullString
			categoryName sql.NullString
			categorySlug sql.NullString
		)
		if err := rows.Scan(
			&ps.ID, &ps.Title, &ps.Slug, &ps.Content, &ps.Excerpt, &ps.FeaturedImage,
			&ps.AuthorID, &ps.CategoryID, &ps.Status, &ps.CreatedAt, &ps.UpdatedAt,
			&username, &ps.Author.Avatar, &categoryName, &categorySlug,
			&ps.CommentCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		ps.Author.ID = ps.AuthorID
		ps.Author.Username = username.String
		ps.Category = models.CategorySummary{ID: ps.CategoryID, Name: categoryName.String, Slug: categorySlug.String}
		items = append(items, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}
	return items, total, nil
}
