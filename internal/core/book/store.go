// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the persistence contract for [Book] records.
type Repository interface {
	// List returns a filtered page of books ordered by sortable title, and the total count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// FindByID returns a single book with its author name.
	FindByID(context context.Context, id int) (*Book, error)

	// FindByTitleAndAuthor matches lower(title) and lower(author name) exactly.
	FindByTitleAndAuthor(context context.Context, title, authorName string) (*Book, error)

	// Create inserts a book and fills its ID and timestamps.
	Create(context context.Context, book *Book) error

	// Update applies a sparse patch. authorID is zero when the author is unchanged.
	Update(context context.Context, id int, patch Patch, authorID int, sortableTitle *string) error

	// Delete removes a book; collection memberships cascade.
	Delete(context context.Context, id int) error

	// ListSeries returns the distinct non-empty series names, sorted.
	ListSeries(context context.Context) ([]string, error)
}

// AuthorResolver resolves an author name to an id, creating the author on
// first reference.
type AuthorResolver interface {
	ResolveID(context context.Context, name string) (int, error)
}
