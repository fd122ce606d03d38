// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/blog"
	"inkpress/internal/models"
	"inkpress/internal/store/memstore"
)

// fixture is a Service over a fresh in-memory store with a clock that
// advances one second per call, so creation order is also time order.
type fixture struct {
	svc   *blog.Service
	db    *memstore.DB
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:    memstore.New(),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = blog.New(f.db.Posts(), f.db.Categories(), f.db.Comments(), f.db.Users(),
		blog.WithClock(func() time.Time {
			f.clock = f.clock.Add(time.Second)
			return f.clock
		}),
	)
	return f
}

// user stores a user and returns its caller identity.
func (f *fixture) user(t *testing.T, username string) *models.Identity {
	t.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    f.clock,
	}
	if err := f.db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u.Identity()
}

func (f *fixture) category(t *testing.T, caller *models.Identity, name string) *models.Category {
	t.Helper()
	c, err := f.svc.CreateCategory(context.Background(), caller, blog.CreateCategoryInput{Name: name})
	if err != nil {
		t.Fatalf("CreateCategory(%q): %v", name, err)
	}
	return c
}

func (f *fixture) post(t *testing.T, caller *models.Identity, cat *models.Category, title string, status models.PostStatus) *models.Post {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), caller, blog.CreatePostInput{
		Title:      title,
		Content:    "Body of " + title,
		CategoryID: cat.ID.String(),
		Status:     &status,
	})
	if err != nil {
		t.Fatalf("CreatePost(%q): %v", title, err)
	}
	return p
}

func assertKind(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func ptr[T any](v T) *T { return &v }
