// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import "context"

// Repository defines the persistence contract for collections and their
// membership.
type Repository interface {
	List(context context.Context) ([]*Collection, error)
	FindByID(context context.Context, id int) (*Collection, error)
	Create(context context.Context, collection *Collection) error
	Delete(context context.Context, id int) error

	// AddBook is idempotent: adding a member twice is not an error.
	AddBook(context context.Context, collectionID, bookID int) error
	RemoveBook(context context.Context, collectionID, bookID int) error
	ListForBook(context context.Context, bookID int) ([]*Collection, error)
}
