// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metadata looks books up in external catalogues.

Google Books and Open Library are queried through their JSON APIs; Amazon and
Goodreads have no usable API and are scraped from their search pages. Every
provider is wrapped by [Guard], which adds a per-provider rate limit and a
circuit breaker so a failing catalogue degrades to a fast 503 instead of
stalling requests.
*/
package metadata

import "context"

// Provider names accepted by the search endpoints.
const (
	ProviderGoogle      = "google"
	ProviderOpenLibrary = "openlibrary"
	ProviderAmazon      = "amazon"
	ProviderGoodreads   = "goodreads"
)

// Count bounds for a search.
const (
	DefaultCount = 1
	MaxCount     = 10
	MatchCount   = 5
)

// Result is one catalogue hit, shaped like the fields a book can take.
type Result struct {
	Provider       string   `json:"provider"`
	Title          string   `json:"title"`
	AuthorName     string   `json:"author"`
	YearPublished  *int     `json:"year_published,omitempty"`
	ISBN           *string  `json:"isbn,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	Genre          *string  `json:"genre,omitempty"`
	Language       *string  `json:"language,omitempty"`
	Synopsis       *string  `json:"synopsis,omitempty"`
	PageCount      *int     `json:"page_count,omitempty"`
	Publisher      *string  `json:"publisher,omitempty"`
	CoverImage     *string  `json:"cover_image,omitempty"`
	AuthorMismatch bool     `json:"author_mismatch"`
}

// Provider searches one external catalogue.
type Provider interface {
	Name() string
	Search(context context.Context, query string, count int) ([]Result, error)
}

const (
	FieldProvider = "provider"
	FieldQuery    = "q"
)
