// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryGenreTable represents the 'library.genre' table
type LibraryGenreTable struct {
	Table string
	ID    string
	Name  string
}

// LibraryGenre is the schema definition for library.genre
var LibraryGenre = LibraryGenreTable{
	Table: "library.genre",
	ID:    "id",
	Name:  "name",
}

func (t LibraryGenreTable) Columns() []string {
	return []string{t.ID, t.Name}
}
