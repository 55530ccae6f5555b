// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package corpus stores the reference books ("other books") that recommendations
are drawn from. They are kept apart from the owner's library so suggestions
can come from a broader set.

Each entry caches its genre ids as an ascending int[] computed at import time,
so ranking never has to resolve genre text.
*/
package corpus

import "time"

// OtherBook is one corpus entry.
type OtherBook struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	AuthorID      int       `json:"author_id"`
	AuthorName    string    `json:"author"`
	YearPublished *int      `json:"year_published"`
	ISBN          *string   `json:"isbn"`
	Rating        *float64  `json:"rating"`
	Genre         *string   `json:"genre"`
	GenreIDs      []int     `json:"genre_ids"`
	Language      *string   `json:"language"`
	Synopsis      *string   `json:"synopsis"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Entry is the input for adding a corpus book.
type Entry struct {
	Title         string
	AuthorName    string
	YearPublished *int
	ISBN          *string
	Rating        *float64
	Genre         *string
	Language      *string
	Synopsis      *string
}

const (
	FieldTitle  = "title"
	FieldAuthor = "author"
)
