// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Validation limits for user-supplied fields.
const (
	maxTitleLen        = 300
	maxContentLen      = 100_000
	maxImageURLLen     = 2_048
	maxCategoryNameLen = 100
	maxDescriptionLen  = 1_000
	maxCommentLen      = 5_000

	// ExcerptLen is the number of characters of content kept in an excerpt.
	ExcerptLen = 200
	// ExcerptSuffix marks an excerpt as truncated content.
	ExcerptSuffix = "..."
)

// Excerpt returns the first ExcerptLen characters of content followed by
// ExcerptSuffix.
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLen {
		return content + ExcerptSuffix
	}
	runes := []rune(content)
	return string(runes[:ExcerptLen]) + ExcerptSuffix
}

// validatePost checks the post fields shared by create and update and
// returns the first error found.
func validatePost(title, content string, image *string, status models.PostStatus) error {
	if title == "" {
		return invalid("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return invalid("title is too long (max 300 characters)")
	}
	if content == "" {
		return invalid("content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return invalid("content is too long (max 100,000 characters)")
	}
	if image != nil && len(*image) > maxImageURLLen {
		return invalid("featured image URL is too long (max 2,048 bytes)")
	}
	if !status.Valid() {
		return invalid("status must be %q or %q", models.PostStatusDraft, models.PostStatusPublished)
	}
	return nil
}

// parseCategoryID validates a client-supplied category reference.
func parseCategoryID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, invalid("categoryId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("categoryId %q is not a valid id", raw)
	}
	return id, nil
}

// ParseID converts a path identifier into a uuid. Malformed identifiers
// cannot name an existing entity, so they are reported as ErrNotFound.
func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound(what)
	}
	return id, nil
}

// normalizeImage trims an optional URL and maps empty to nil.
func normalizeImage(image *string) *string {
	if image == nil {
		return nil
	}
	v := strings.TrimSpace(*image)
	if v == "" {
		return nil
	}
	return &v
}
