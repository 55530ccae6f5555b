// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Extensions by decoded image format.
var formatExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// rendition is everything derived from one source image.
type rendition struct {
	ext      string
	tiny     []byte
	blurHash string
}

// render decodes data and derives the thumbnail and BlurHash.
// Unsupported or corrupt images fail here, before anything is written.
func render(data []byte) (*rendition, error) {
	source, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	ext, ok := formatExtensions[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	thumbnail := thumbnail(source, TinySize)

	var tiny bytes.Buffer
	if err := jpeg.Encode(&tiny, thumbnail, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	// 4x3 components
	hash, err := blurhash.Encode(4, 3, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("encode blurhash: %w", err)
	}

	return &rendition{ext: ext, tiny: tiny.Bytes(), blurHash: hash}, nil
}

// thumbnail scales source to fit within size x size, keeping the aspect
// ratio. Images already small enough are only converted to RGBA.
func thumbnail(source image.Image, size int) *image.RGBA {
	bounds := source.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > size || height > size {
		if width >= height {
			height = max(1, height*size/width)
			width = size
		} else {
			width = max(1, width*size/height)
			height = size
		}
	}

	target := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(target, target.Bounds(), source, bounds, draw.Src, nil)
	return target
}
