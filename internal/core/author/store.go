// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import "context"

// Repository defines the persistence contract for [Author] records.
type Repository interface {
	List(context context.Context, limit, offset int) ([]*Author, int, error)
	FindByID(context context.Context, id int) (*Author, error)

	// GetOrCreate returns the author with exactly this name, inserting it with
	// the given derived fields when absent.
	GetOrCreate(context context.Context, candidate *Author) (*Author, error)
}
