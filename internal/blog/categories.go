// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// CreateCategoryInput is the payload of CreateCategory.
type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ListCategories returns every category ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// CreateCategory stores a new category. It requires an authenticated
// caller. Names whose slug collides with an existing category are
// rejected as invalid.
func (s *Service) CreateCategory(ctx context.Context, caller *models.Identity, in CreateCategoryInput) (*models.Category, error) {
	if err := RequireCaller(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, invalid("name is too long (max 100 characters)")
	}
	catSlug := slug.Generate(name)
	if catSlug == "" {
		return nil, invalid("name must contain at least one letter or digit")
	}

	var description *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if utf8.RuneCountInString(d) > maxDescriptionLen {
			return nil, invalid("description is too long (max 1,000 characters)")
		}
		if d != "" {
			description = &d
		}
	}

	c := &models.Category{
		ID:          s.newID(),
		Name:        name,
		Slug:        catSlug,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, invalid("category %q already exists", name)
		}
		return nil, storeErr("create category", err)
	}
	return c, nil
}
