// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"inkpress/internal/blog"
	"inkpress/internal/middleware"
)

// ListCategories handles GET /api/categories.
func (b *Blog) ListCategories(w http.ResponseWriter, r *http.Request) {
	b.cached(w, r, func(ctx context.Context) (any, error) {
		return b.svc.ListCategories(ctx)
	})
}

// CreateCategory handles POST /api/categories.
func (b *Blog) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in blog.CreateCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	cat, err := b.svc.CreateCategory(r.Context(), middleware.IdentityFromCtx(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	b.invalidate(r.Context())

	slog.Info("category created", "category_id", cat.ID, "slug", cat.Slug)
	respond(w, http.StatusCreated, cat)
}
