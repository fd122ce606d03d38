// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore implements the blog repositories in process memory.
// It backs tests and the STORE_BACKEND=memory development mode. All
// stores created from one DB share its data and its lock, so every method
// is safe for concurrent use.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"inkpress/internal/blog"
	"inkpress/internal/models"
)

// DB holds the four collections. Values are stored by copy so callers
// cannot mutate stored rows through returned structs.
type DB struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	posts      map[uuid.UUID]models.Post
	comments   map[uuid.UUID]models.Comment
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		users:      make(map[uuid.UUID]models.User),
		categories: make(map[uuid.UUID]models.Category),
		posts:      make(map[uuid.UUID]models.Post),
		comments:   make(map[uuid.UUID]models.Comment),
	}
}

// Users returns the user repository view of db.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Categories returns the category repository view of db.
func (db *DB) Categories() *CategoryStore { return &CategoryStore{db: db} }

// Posts returns the post repository view of db.
func (db *DB) Posts() *PostStore { return &PostStore{db: db} }

// Comments returns the comment repository view of db.
func (db *DB) Comments() *CommentStore { return &CommentStore{db: db} }

// authorSummary must be called with db.mu held.
func (db *DB) authorSummary(id uuid.UUID) models.AuthorSummary {
	if u, ok := db.users[id]; ok {
		return u.Summary()
	}
	return models.AuthorSummary{ID: id}
}

// UserStore is the in-memory user repository.
type UserStore struct{ db *DB }

// FindByID returns the user with id, or nil if none exists.
func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail returns the user with the given email (case-insensitive),
// or nil if none exists.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// Create inserts u. Email and username are unique, case-insensitively.
func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.users {
		if strings.EqualFold(other.Email, u.Email) || strings.EqualFold(other.Username, u.Username) {
			return fmt.Errorf("create user: %w", blog.ErrDuplicate)
		}
	}
	s.db.users[u.ID] = *u
	return nil
}

// UpdateAvatar replaces the avatar of user id. A nil avatar clears it.
func (s *UserStore) UpdateAvatar(_ context.Context, id uuid.UUID, avatar *string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil
	}
	u.Avatar = avatar
	s.db.users[id] = u
	return nil
}

// CategoryStore is the in-memory category repository.
type CategoryStore struct{ db *DB }

// List returns all categories ordered by name.
func (s *CategoryStore) List(_ context.Context) ([]models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := make([]models.Category, 0, len(s.db.categories))
	for _, c := range s.db.categories {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items, nil
}

// FindByID returns the category with id, or nil if none exists.
func (s *CategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Create inserts c, rejecting duplicate names and slugs.
func (s *CategoryStore) Create(_ context.Context, c *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.categories {
		if other.Name == c.Name || other.Slug == c.Slug {
			return fmt.Errorf("create category: %w", blog.ErrDuplicate)
		}
	}
	s.db.categories[c.ID] = *c
	return nil
}

// PostStore is the in-memory post repository.
type PostStore struct{ db *DB }

// Create inserts p.
func (s *PostStore) Create(_ context.Context, p *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, exists := s.db.posts[p.ID]; exists {
		return fmt.Errorf("create post: %w", blog.ErrDuplicate)
	}
	s.db.posts[p.ID] = *p
	return nil
}

// FindByID returns the post with id, or nil if none exists.
func (s *PostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	p, ok := s.db.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update replaces the stored post. Missing posts are ignored.
func (s *PostStore) Update(_ context.Context, p *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[p.ID]; ok {
		s.db.posts[p.ID] = *p
	}
	return nil
}

// Delete removes the post. Comments are not touched.
func (s *PostStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.posts, id)
	return nil
}

// ListPublished filters, orders and windows posts using the same rules as
// the SQL store.
func (s *PostStore) ListPublished(_ context.Context, q blog.PostQuery) ([]models.PostSummary, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, c := range s.db.comments {
		counts[c.PostID]++
	}

	var matched []models.PostSummary
	for _, p := range s.db.posts {
		if !q.Filter.Admits(&p) {
			continue
		}
		summary := models.PostSummary{
			Post:         p,
			Author:       s.db.authorSummary(p.AuthorID),
			Category:     models.CategorySummary{ID: p.CategoryID},
			CommentCount: counts[p.ID],
		}
		if c, ok := s.db.categories[p.CategoryID]; ok {
			summary.Category = c.Summary()
		}
		matched = append(matched, summary)
	}
	blog.SortSummaries(matched)

	return blog.PageOf(matched, q.Offset, q.Limit), len(matched), nil
}

// CommentStore is the in-memory comment repository.
type CommentStore struct{ db *DB }

// Create inserts c.
func (s *CommentStore) Create(_ context.Context, c *models.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.comments[c.ID] = *c
	return nil
}

// ListByPost returns the comments of a post newest first, ties broken by
// id ascending.
func (s *CommentStore) ListByPost(_ context.Context, postID uuid.UUID) ([]models.CommentView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := []models.CommentView{}
	for _, c := range s.db.comments {
		if c.PostID != postID {
			continue
		}
		items = append(items, models.CommentView{Comment: c, Author: s.db.authorSummary(c.AuthorID)})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items, nil
}

// Compile-time interface checks.
var (
	_ blog.UserRepository     = (*UserStore)(nil)
	_ blog.CategoryRepository = (*CategoryStore)(nil)
	_ blog.PostRepository     = (*PostStore)(nil)
	_ blog.CommentRepository  = (*CommentStore)(nil)
)
