// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryOtherBookTable represents the 'library.otherbook' table.
// Rows are the recommendation corpus, never shown as the user's own books.
type LibraryOtherBookTable struct {
	Table         string
	ID            string
	Title         string
	AuthorID      string
	YearPublished string
	ISBN          string
	Rating        string
	Genre         string
	GenreIDs      string
	Language      string
	Synopsis      string
	CreatedAt     string
	UpdatedAt     string
}

// LibraryOtherBook is the schema definition for library.otherbook
var LibraryOtherBook = LibraryOtherBookTable{
	Table:         "library.otherbook",
	ID:            "id",
	Title:         "title",
	AuthorID:      "authorid",
	YearPublished: "yearpublished",
	ISBN:          "isbn",
	Rating:        "rating",
	Genre:         "genre",
	GenreIDs:      "genreids",
	Language:      "language",
	Synopsis:      "synopsis",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t LibraryOtherBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.AuthorID, t.YearPublished, t.ISBN, t.Rating,
		t.Genre, t.GenreIDs, t.Language, t.Synopsis, t.CreatedAt, t.UpdatedAt,
	}
}
