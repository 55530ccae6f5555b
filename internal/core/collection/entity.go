// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package collection groups library books into named, owner-defined shelves.
// A book may sit in any number of collections.
package collection

import "time"

// Collection is a named group of books.
type Collection struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	BookCount   int       `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Draft is the input for creating a collection.
type Draft struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

const (
	FieldName = "name"
)
