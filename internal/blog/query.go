// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"math"
	"sort"

	"inkpress/internal/models"
)

// Paging defaults used by the HTTP binding.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PostQuery is what the service asks the post repository for: a filter
// plus a page window.
type PostQuery struct {
	Filter ListFilter
	Limit  int
	Offset int
}

// Pagination describes where a page sits in the filtered result set.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// PostPage is one page of the published post listing.
type PostPage struct {
	Items      []models.PostSummary `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Window converts a 1-based page number and page size into a PostQuery.
// Offsets that would overflow are pinned to math.MaxInt, which lies past
// the last page of any real collection.
func Window(filter ListFilter, page, pageSize int) PostQuery {
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}
	return PostQuery{Filter: filter, Limit: pageSize, Offset: offset}
}

// TotalPages returns ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Less orders posts for listing: newest first, then by id ascending so
// that equal timestamps still paginate deterministically.
func Less(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// SortSummaries sorts posts into listing order in place.
func SortSummaries(posts []models.PostSummary) {
	sort.SliceStable(posts, func(i, j int) bool {
		return Less(&posts[i].Post, &posts[j].Post)
	})
}

// PageOf returns the [offset, offset+limit) window of items, or an empty
// slice when the window starts past the end.
func PageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

// ListPosts returns one page of published posts matching filter. Items
// carry their author, category and comment count but no comment bodies.
// A page past the last one yields no items and correct totals. Page sizes
// above MaxPageSize are clamped.
func (s *Service) ListPosts(ctx context.Context, filter ListFilter, page, pageSize int) (*PostPage, error) {
	if page < 1 {
		return nil, invalid("page must be at least 1")
	}
	if pageSize < 1 {
		return nil, invalid("page size must be at least 1")
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.posts.ListPublished(ctx, Window(filter, page, pageSize))
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	if items == nil {
		items = []models.PostSummary{}
	}

	return &PostPage{
		Items: items,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   TotalPages(total, pageSize),
			TotalItems:   total,
			ItemsPerPage: pageSize,
		},
	}, nil
}
