// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cover stores book cover images.

A cover arrives either as an upload or as a remote URL. Remote URLs are never
fetched on the request path: they are recorded on the book as a pending
marker and downloaded by a background [Worker]. Every stored cover gets a
64x64 JPEG thumbnail and a BlurHash placeholder.
*/
package cover

// File stems under a book's folder.
const (
	coverStem = "cover"
	tinyStem  = "cover_tiny"
)

// TinySize bounds both sides of the thumbnail.
const TinySize = 64

// Stored is the result of saving a cover.
type Stored struct {
	BookID         int    `json:"book_id"`
	CoverImage     string `json:"cover_image"`
	CoverImageTiny string `json:"cover_image_tiny"`
	BlurHash       string `json:"cover_blurhash"`
}

// Pending is a book waiting for its remote cover.
type Pending struct {
	BookID int
	URL    string
}

// Pass reports what one download pass did.
type Pass struct {
	Processed bool   `json:"processed"`
	BookID    int    `json:"book_id,omitempty"`
	Message   string `json:"message"`
}

const FieldFile = "file"
const FieldURL = "url"
