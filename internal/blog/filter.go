// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Recognised listing filter keys. "categoryId" is accepted as an alias of
// "category".
const (
	FilterSearch     = "search"
	FilterCategory   = "category"
	FilterCategoryID = "categoryId"
)

// ListFilter narrows the published post collection. The zero value
// matches every published post. Search and CategoryID compose
// conjunctively.
type ListFilter struct {
	// Search keeps posts whose title or content contains the term,
	// compared case-insensitively. Empty means no search.
	Search string
	// CategoryID keeps posts in exactly this category. Nil means any.
	CategoryID *uuid.UUID
}

// ParseListFilter builds a ListFilter from raw key/value parameters.
// Unknown keys are rejected rather than ignored. Empty values are treated
// as absent.
func ParseListFilter(params map[string]string) (ListFilter, error) {
	var f ListFilter
	var unknown []string
	for key, value := range params {
		switch key {
		case FilterSearch:
			f.Search = strings.TrimSpace(value)
		case FilterCategory, FilterCategoryID:
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			id, err := uuid.Parse(value)
			if err != nil {
				return ListFilter{}, invalid("%s %q is not a valid id", key, value)
			}
			if f.CategoryID != nil && *f.CategoryID != id {
				return ListFilter{}, invalid("conflicting category filters")
			}
			f.CategoryID = &id
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ListFilter{}, invalid("unknown filter %s", strings.Join(unknown, ", "))
	}
	return f, nil
}

// Admits reports whether p belongs to the filtered listing: it must be
// published and satisfy every filter that is set.
func (f ListFilter) Admits(p *models.Post) bool {
	if !p.IsPublished() {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Content), term) {
			return false
		}
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern returns the SQL LIKE pattern for a substring search on
// term, with LIKE metacharacters escaped using backslash.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
