// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package language lists the languages books in the library are written in.
package language

import "context"

// Language is one distinct book language with the number of books using it.
type Language struct {
	Name  string `json:"name"`
	Books int    `json:"books"`
}

type Repository interface {
	// ListUsed returns every non-empty language with its book count,
	// ordered by name.
	ListUsed(context context.Context) ([]*Language, error)
}
