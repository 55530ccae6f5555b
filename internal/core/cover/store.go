// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import "context"

// Repository persists the cover columns of library.book.
type Repository interface {
	// SaveCover writes the cover fields and clears the pending marker.
	SaveCover(context context.Context, stored Stored) error

	// SetPending records url as the book's pending remote cover.
	SetPending(context context.Context, bookID int, url string) error

	// NextPending returns the least recently attempted pending book, or nil.
	NextPending(context context.Context) (*Pending, error)

	// ClearPending drops the marker without touching the cover.
	ClearPending(context context.Context, bookID int) error

	// Postpone moves a pending book to the back of the queue.
	Postpone(context context.Context, bookID int) error
}
