// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/blog"
	"inkpress/internal/middleware"
)

// CreateComment handles POST /api/comments.
func (b *Blog) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in blog.CreateCommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	comment, err := b.svc.CreateComment(r.Context(), middleware.IdentityFromCtx(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	// Listings carry comment counts.
	b.invalidate(r.Context())

	respond(w, http.StatusCreated, comment)
}

// ListComments handles GET /api/comments/post/{postId}.
func (b *Blog) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := blog.ParseID(chi.URLParam(r, "postId"), "post")
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, err := b.svc.ListComments(r.Context(), postID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, comments)
}
