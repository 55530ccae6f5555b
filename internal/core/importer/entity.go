// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer turns bulk exports into library books in two phases.

Parse reads a CSV export or free-text notes into [BookImport] candidates and
flags the ones that already exist. Confirm applies the owner's per-item choice
(add a new book or merge into the existing one), committing each item on its
own so one bad row never undoes the rest.

The same CSV parsing also feeds the recommendation corpus.
*/
package importer

import "github.com/taibuivan/libra/internal/core/book"

// # Candidates

// BookImport is one parsed row, held only for the parse/confirm round-trip.
type BookImport struct {
	Title          string       `json:"title"`
	AuthorName     string       `json:"author"`
	BookType       *book.Type   `json:"book_type,omitempty"`
	Status         *book.Status `json:"status,omitempty"`
	Rating         *float64     `json:"rating,omitempty"`
	Genre          *string      `json:"genre,omitempty"`
	ISBN           *string      `json:"isbn,omitempty"`
	Synopsis       *string      `json:"synopsis,omitempty"`
	PageCount      *int         `json:"page_count,omitempty"`
	YearPublished  *int         `json:"year_published,omitempty"`
	Series         *string      `json:"series,omitempty"`
	CoverImage     *string      `json:"cover_image,omitempty"`
	Language       *string      `json:"language,omitempty"`
	ExistingBook   bool         `json:"existing_book"`
	ExistingBookID *int         `json:"existing_book_id,omitempty"`

	// line is the source line the candidate was parsed from.
	line int
}

// Skip records a row that was left out of a parse.
type Skip struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report summarises one parse or corpus import.
type Report struct {
	Format   string `json:"format"`
	Parsed   int    `json:"parsed"`
	Skipped  int    `json:"skipped"`
	Imported int    `json:"imported,omitempty"`
	Skips    []Skip `json:"skips,omitempty"`
}

func (report *Report) skip(line int, reason string) {
	report.Skipped++
	if reason != "" {
		report.Skips = append(report.Skips, Skip{Line: line, Reason: reason})
	}
}

// ParseResult is the response of a parse endpoint.
type ParseResult struct {
	Items  []BookImport `json:"items"`
	Report Report       `json:"report"`
}

// # Confirmation

// Action is the owner's choice for one candidate.
type Action string

const (
	ActionAdd   Action = "add"
	ActionMerge Action = "merge"
)

// ConfirmItem is a parsed candidate echoed back with the chosen action.
// Decoding rejects keys that are not part of [BookImport].
type ConfirmItem struct {
	Action Action `json:"action,omitempty"`
	BookImport
}

// ItemResult reports what happened to one confirmed item.
type ItemResult struct {
	Index  int    `json:"index"`
	Action Action `json:"action"`
	BookID int    `json:"book_id,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Failed reports whether the item was not applied.
func (result ItemResult) Failed() bool {
	return result.Code != ""
}

// Source format labels used in reports and metrics.
const (
	FormatCSV    = "csv"
	FormatNotes  = "notes"
	FormatCorpus = "corpus"
)
