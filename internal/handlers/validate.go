// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"inkpress/internal/blog"
)

// Query parameters that control paging rather than filtering.
const (
	pageParam  = "page"
	limitParam = "limit"
)

// parseListQuery splits a listing query string into page, page size and
// filter parameters. Missing page and limit fall back to 1 and
// blog.DefaultPageSize; non-numeric values are validation errors.
func parseListQuery(q url.Values) (page, limit int, filter map[string]string, err error) {
	page, limit = 1, blog.DefaultPageSize
	filter = make(map[string]string)

	for key, values := range q {
		value := ""
		if len(values) > 0 {
			value = values[len(values)-1]
		}
		switch key {
		case pageParam:
			if page, err = parseIntParam(key, value, 1); err != nil {
				return 0, 0, nil, err
			}
		case limitParam:
			if limit, err = parseIntParam(key, value, blog.DefaultPageSize); err != nil {
				return 0, 0, nil, err
			}
		default:
			filter[key] = value
		}
	}
	return page, limit, filter, nil
}

// parseIntParam parses a query integer. Blank values use fallback.
func parseIntParam(key, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", blog.ErrValidation, key)
	}
	return n, nil
}
