// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryCollectionTable represents the 'library.collection' table
type LibraryCollectionTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
}

// LibraryCollection is the schema definition for library.collection
var LibraryCollection = LibraryCollectionTable{
	Table:       "library.collection",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
}

func (t LibraryCollectionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt}
}

// LibraryCollectionBookTable represents the 'library.collectionbook' join table
type LibraryCollectionBookTable struct {
	Table        string
	CollectionID string
	BookID       string
}

// LibraryCollectionBook is the schema definition for library.collectionbook
var LibraryCollectionBook = LibraryCollectionBookTable{
	Table:        "library.collectionbook",
	CollectionID: "collectionid",
	BookID:       "bookid",
}

func (t LibraryCollectionBookTable) Columns() []string {
	return []string{t.CollectionID, t.BookID}
}
