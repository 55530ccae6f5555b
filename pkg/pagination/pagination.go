// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters for list endpoints
// and builds the "meta" block of a paginated response.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for the page.
func (params Params) Offset() int {
	return (params.Page - 1) * params.Limit
}

// Meta describes the page against a total row count.
func (params Params) Meta(total int) Meta {
	return NewMeta(params.Page, params.Limit, total)
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

/*
FromRequest reads "page" and "limit" from the query string.

Description: Missing or malformed values fall back to the defaults. A page
below 1 becomes 1; a limit below 1 becomes [DefaultLimit] and a limit above
[MaxLimit] is capped.
*/
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	page := intOr(query.Get("page"), DefaultPage)
	limit := intOr(query.Get("limit"), DefaultLimit)

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: max(page, 1), Limit: limit}
}

func intOr(raw string, fallback int) int {
	if value, err := strconv.Atoi(raw); err == nil {
		return value
	}
	return fallback
}
