// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages the owner's own library: the Book aggregate, its sparse
update contract and the listing endpoints built on top of it.

Core Responsibility:

  - Catalogue: books with their author reference, reading status and format.
  - Ordering: a derived sortable title recomputed whenever the title changes.
  - Duplicates: exact case-insensitive title + author lookup for imports.
*/
package book

import (
	"strings"
	"time"

	"github.com/taibuivan/libra/pkg/slug"
)

// # Domain Enums

// Type is the physical format of a book.
type Type string

const (
	TypeEbook     Type = "ebook"
	TypeAudiobook Type = "audiobook"
	TypePhysical  Type = "physical"
)

// Status is the owner's reading status.
type Status string

const (
	StatusToRead           Status = "to-read"
	StatusCurrentlyReading Status = "currently-reading"
	StatusRead             Status = "read"
	StatusWishlist         Status = "wishlist"
)

// # Core Entities

// Book is a single title in the owner's library.
type Book struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	SortableTitle  string    `json:"sortable_title"`
	AuthorID       int       `json:"author_id"`
	AuthorName     string    `json:"author"`
	YearPublished  *int      `json:"year_published"`
	ISBN           *string   `json:"isbn"`
	Rating         *float64  `json:"rating"`
	BookType       Type      `json:"book_type"`
	Status         *Status   `json:"status"`
	Genre          *string   `json:"genre"`
	Language       *string   `json:"language"`
	Synopsis       *string   `json:"synopsis"`
	Review         *string   `json:"review"`
	CoverImage     *string   `json:"cover_image"`
	CoverImageTiny *string   `json:"cover_image_tiny"`
	CoverBlurHash  *string   `json:"cover_blurhash"`
	PageCount      *int      `json:"page_count"`
	Series         *string   `json:"series"`
	Tags           *string   `json:"tags"`
	Publisher      *string   `json:"publisher"`
	Notes          *string   `json:"notes"`
	FilePath       *string   `json:"file_path"`
	RemoteImageURL *string   `json:"remote_image_url,omitempty"` // pending cover download
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Draft is the input for creating a book. The author is given by name and
// resolved (or created) before the book is persisted.
type Draft struct {
	Title         string   `json:"title"`
	AuthorName    string   `json:"author"`
	YearPublished *int     `json:"year_published"`
	ISBN          *string  `json:"isbn"`
	Rating        *float64 `json:"rating"`
	BookType      Type     `json:"book_type"`
	Status        *Status  `json:"status"`
	Genre         *string  `json:"genre"`
	Language      *string  `json:"language"`
	Synopsis      *string  `json:"synopsis"`
	Review        *string  `json:"review"`
	PageCount     *int     `json:"page_count"`
	Series        *string  `json:"series"`
	Tags          *string  `json:"tags"`
	Publisher     *string  `json:"publisher"`
	Notes         *string  `json:"notes"`
	CoverURL      *string  `json:"cover_url"` // downloaded later by the cover worker
}

// Patch is a sparse update. Nil fields leave the stored value untouched; the
// struct itself is the allow-list of updatable fields.
type Patch struct {
	Title         *string  `json:"title,omitempty"`
	AuthorName    *string  `json:"author,omitempty"`
	YearPublished *int     `json:"year_published,omitempty"`
	ISBN          *string  `json:"isbn,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	BookType      *Type    `json:"book_type,omitempty"`
	Status        *Status  `json:"status,omitempty"`
	Genre         *string  `json:"genre,omitempty"`
	Language      *string  `json:"language,omitempty"`
	Synopsis      *string  `json:"synopsis,omitempty"`
	Review        *string  `json:"review,omitempty"`
	PageCount     *int     `json:"page_count,omitempty"`
	Series        *string  `json:"series,omitempty"`
	Tags          *string  `json:"tags,omitempty"`
	Publisher     *string  `json:"publisher,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// # Search & Filtering

// Filter holds the parameters for a filtered book list query.
type Filter struct {
	Query    string // ILIKE over title, author, isbn and year
	Type     Type
	Status   Status
	Series   string
	Author   string // exact author name, case-insensitive
	AuthorID int
}

// # Derived Values

var leadingArticles = []string{"the ", "a ", "an "}

// SortableTitle lower-cases title, folds accents and drops a leading English
// article: "The Hobbit" sorts as "hobbit".
func SortableTitle(title string) string {
	folded := slug.Fold(title)
	for _, article := range leadingArticles {
		if rest, ok := strings.CutPrefix(folded, article); ok && strings.TrimSpace(rest) != "" {
			return strings.TrimSpace(rest)
		}
	}
	return folded
}

// # Field Identifiers

const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldYearPublished = "year_published"
	FieldRating        = "rating"
	FieldBookType      = "book_type"
	FieldStatus        = "status"
	FieldPageCount     = "page_count"
	FieldISBN          = "isbn"
	FieldCoverURL      = "cover_url"
)
