// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table          string
	ID             string
	Title          string
	SortableTitle  string
	AuthorID       string
	YearPublished  string
	ISBN           string
	Rating         string
	BookType       string
	Status         string
	Genre          string
	Language       string
	Synopsis       string
	Review         string
	CoverImage     string
	CoverImageTiny string
	CoverBlurHash  string
	PageCount      string
	Series         string
	Tags           string
	Publisher      string
	Notes          string
	FilePath       string
	RemoteImageURL string
	CreatedAt      string
	UpdatedAt      string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:          "library.book",
	ID:             "id",
	Title:          "title",
	SortableTitle:  "sortabletitle",
	AuthorID:       "authorid",
	YearPublished:  "yearpublished",
	ISBN:           "isbn",
	Rating:         "rating",
	BookType:       "booktype",
	Status:         "status",
	Genre:          "genre",
	Language:       "language",
	Synopsis:       "synopsis",
	Review:         "review",
	CoverImage:     "coverimage",
	CoverImageTiny: "coverimagetiny",
	CoverBlurHash:  "coverblurhash",
	PageCount:      "pagecount",
	Series:         "series",
	Tags:           "tags",
	Publisher:      "publisher",
	Notes:          "notes",
	FilePath:       "filepath",
	RemoteImageURL: "remoteimageurl",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t LibraryBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.SortableTitle, t.AuthorID, t.YearPublished, t.ISBN, t.Rating,
		t.BookType, t.Status, t.Genre, t.Language, t.Synopsis, t.Review,
		t.CoverImage, t.CoverImageTiny, t.CoverBlurHash, t.PageCount, t.Series,
		t.Tags, t.Publisher, t.Notes, t.FilePath, t.RemoteImageURL, t.CreatedAt, t.UpdatedAt,
	}
}
