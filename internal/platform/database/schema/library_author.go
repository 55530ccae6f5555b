// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryAuthorTable represents the 'library.author' table
type LibraryAuthorTable struct {
	Table        string
	ID           string
	Name         string
	Surname      string
	SurnameFirst string
	CoverImage   string
	Description  string
	CreatedAt    string
}

// LibraryAuthor is the schema definition for library.author
var LibraryAuthor = LibraryAuthorTable{
	Table:        "library.author",
	ID:           "id",
	Name:         "name",
	Surname:      "surname",
	SurnameFirst: "surnamefirst",
	CoverImage:   "coverimage",
	Description:  "description",
	CreatedAt:    "createdat",
}

func (t LibraryAuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.Surname, t.SurnameFirst, t.CoverImage, t.Description, t.CreatedAt}
}
