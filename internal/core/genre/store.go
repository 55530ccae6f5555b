// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository defines the persistence contract for the genre dictionary.
type Repository interface {
	// GetOrCreate returns the id of every name, inserting unknown names.
	// names are unique and non-empty.
	GetOrCreate(context context.Context, names []string) (map[string]int, error)

	// ListBookGenreText returns the raw comma-joined genre text of every
	// library book that has one.
	ListBookGenreText(context context.Context) ([]string, error)
}
