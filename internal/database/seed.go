// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/slug"
)

// Default development account created by Seed.
const (
	SeedEmail    = "writer@inkpress.local"
	SeedUsername = "writer"
	SeedPassword = "writer"
)

// seedCategories are inserted on first run so posts can be created
// immediately in a fresh development database.
var seedCategories = []struct{ name, description string }{
	{"General", "Posts that do not fit anywhere else."},
	{"Technology", "Software, hardware and the web."},
	{"Travel", "Places, routes and notes from the road."},
}

// Seed populates the database with initial development data.
// It creates a default writer account and a few categories when the
// users table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, uuid.New(), SeedUsername, SeedEmail, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	for _, c := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (id, name, slug, description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING
		`, uuid.New(), c.name, slug.Generate(c.name), c.description)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
	}

	slog.Info("database seeded with default writer",
		"email", SeedEmail,
		"password", SeedPassword,
		"categories", len(seedCategories),
	)

	return nil
}
