// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package files stores the owner's book files (PDF, EPUB, and so on) and
// serves them back under a readable download name.
package files

import (
	"io/fs"
	"os"
	"slices"
	"strings"
)

// fileStem is the stored name of a book file, before its extension.
const fileStem = "book"

// SupportedExtensions lists the accepted book file types.
var SupportedExtensions = []string{
	".pdf", ".epub", ".mobi", ".txt", ".azw3", ".htm", ".html", ".pdb", ".djvu", ".fb2",
}

// Supported reports whether ext (with dot, any case) is accepted.
func Supported(ext string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(ext))
}

// Attached is the result of an upload.
type Attached struct {
	BookID   int    `json:"book_id"`
	FilePath string `json:"file_path"`
}

// Download is an open stored file plus the name offered to the client.
type Download struct {
	File *os.File
	Info fs.FileInfo
	Name string
}

const FieldFile = "file"
