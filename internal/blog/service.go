// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Service implements the post, category and comment operations.
type Service struct {
	posts      PostRepository
	categories CategoryRepository
	comments   CommentRepository
	users      UserRepository

	now       func() time.Time
	newID     func() uuid.UUID
	plainText *bluemonday.Policy
	ugc       *bluemonday.Policy
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the id generator (uuid.New by default).
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service over the given repositories.
func New(posts PostRepository, categories CategoryRepository, comments CommentRepository, users UserRepository, opts ...Option) *Service {
	s := &Service{
		posts:      posts,
		categories: categories,
		comments:   comments,
		users:      users,
		now:        defaultNow,
		newID:      uuid.New,
		plainText:  bluemonday.StrictPolicy(),
		ugc:        bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultNow truncates to microseconds, the precision PostgreSQL keeps,
// so values read back compare equal to the ones written.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
