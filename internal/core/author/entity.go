// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package author manages the shared Author records referenced by books and
// by the recommendation corpus.
package author

import "time"

// Author is a writer referenced by name. Surname fields are derived once, on
// creation.
type Author struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	SurnameFirst string    `json:"surname_first"`
	CoverImage   *string   `json:"cover_image"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldName = "name"
)
