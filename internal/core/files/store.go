// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package files

import "context"

// Repository records where a book's file lives.
type Repository interface {
	SetFilePath(context context.Context, bookID int, path string) error
}
