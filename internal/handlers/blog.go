// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON REST API. Each handler decodes the
// request, calls the blog or account service, and writes the uniform
// {success, data, error, message} envelope.
package handlers

import (
	"context"
	"net/http"

	"inkpress/internal/blog"
	"inkpress/internal/cache"
)

// Blog serves posts, categories and comments.
type Blog struct {
	svc   *blog.Service
	cache *cache.ResponseCache
}

// NewBlog creates the blog handlers. A nil cache disables response
// caching.
func NewBlog(svc *blog.Service, responseCache *cache.ResponseCache) *Blog {
	return &Blog{svc: svc, cache: responseCache}
}

// cached serves r from the response cache, or calls load, caches its
// encoded envelope and writes it.
func (b *Blog) cached(w http.ResponseWriter, r *http.Request, load func(ctx context.Context) (any, error)) {
	key := cache.Key(r.URL.Path, r.URL.Query())
	if body, ok := b.cache.Get(r.Context(), key); ok {
		writeRaw(w, http.StatusOK, body)
		return
	}

	data, err := load(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	body, err := encodeSuccess(data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	b.cache.Set(r.Context(), key, body)
	writeRaw(w, http.StatusOK, body)
}

// invalidate drops cached listings after a successful write.
func (b *Blog) invalidate(ctx context.Context) {
	b.cache.InvalidateAll(ctx)
}
