// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/blog"
	"inkpress/internal/middleware"
)

// ListPosts handles GET /api/posts?page&limit&search&category.
func (b *Blog) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, params, err := parseListQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	filter, err := blog.ParseListFilter(params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	b.cached(w, r, func(ctx context.Context) (any, error) {
		return b.svc.ListPosts(ctx, filter, page, limit)
	})
}

// GetPost handles GET /api/posts/{id}.
func (b *Blog) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := blog.ParseID(chi.URLParam(r, "id"), "post")
	if err != nil {
		respondError(w, r, err)
		return
	}

	post, err := b.svc.GetPost(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, post)
}

// CreatePost handles POST /api/posts.
func (b *Blog) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in blog.CreatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	caller := middleware.IdentityFromCtx(r.Context())
	post, err := b.svc.CreatePost(r.Context(), caller, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	b.invalidate(r.Context())

	slog.Info("post created", "post_id", post.ID, "author_id", post.AuthorID, "status", post.Status)
	respond(w, http.StatusCreated, post)
}

// UpdatePost handles PUT /api/posts/{id}.
func (b *Blog) UpdatePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	id, err := blog.ParseID(chi.URLParam(r, "id"), "post")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var in blog.UpdatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := b.svc.UpdatePost(r.Context(), caller, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	b.invalidate(r.Context())

	slog.Info("post updated", "post_id", post.ID)
	respond(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (b *Blog) DeletePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	id, err := blog.ParseID(chi.URLParam(r, "id"), "post")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := b.svc.DeletePost(r.Context(), caller, id); err != nil {
		respondError(w, r, err)
		return
	}
	b.invalidate(r.Context())

	slog.Info("post deleted", "post_id", id)
	respondMessage(w, "Post deleted successfully")
}
