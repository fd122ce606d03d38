// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a blog author. Users are created by the identity layer;
// the content service only reads them.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity returns the caller identity for this user.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// Summary returns the public author projection of this user.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// Identity is the verified caller of an operation, as resolved from a
// bearer credential. It is distinct from any author id a client may put in
// a request payload.
type Identity struct {
	ID       uuid.UUID
	Username string
	Avatar   *string
}

// Summary returns the public author projection of the identity.
func (i *Identity) Summary() AuthorSummary {
	return AuthorSummary{ID: i.ID, Username: i.Username, Avatar: i.Avatar}
}

// AuthorSummary is the author data attached to posts and comments for
// display. It never carries email or credential material.
type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   *string   `json:"avatar,omitempty"`
}
