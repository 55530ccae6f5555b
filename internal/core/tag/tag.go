// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag lists the free-form tags the owner put on books. Tags are kept
// on each book as comma-joined text.
package tag

import "context"

// Tag is one distinct tag with the number of books carrying it.
type Tag struct {
	Name  string `json:"name"`
	Books int    `json:"books"`
}

type Repository interface {
	// ListBookTagText returns the raw tag text of every book that has one.
	ListBookTagText(context context.Context) ([]string, error)
}
