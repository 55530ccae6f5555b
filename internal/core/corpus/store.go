// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package corpus

import "context"

// Repository defines the persistence contract for corpus books.
type Repository interface {
	Create(context context.Context, book *OtherBook) error

	// ListCandidates returns every entry with at least one genre id whose
	// author is not excludeAuthorID, ordered by id.
	ListCandidates(context context.Context, excludeAuthorID int) ([]*OtherBook, error)

	Count(context context.Context) (int, error)
}

// AuthorResolver resolves an author name to an id, creating it on first use.
type AuthorResolver interface {
	ResolveID(context context.Context, name string) (int, error)
}

// GenreResolver maps comma-joined genre text to sorted genre ids.
type GenreResolver interface {
	ResolveText(context context.Context, text string) ([]int, error)
}
