// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds arbitrary Unicode strings into ASCII-friendly forms.
//
// # Usage
//
// [Fold] feeds the sortable title column; [From] builds download file names
// (e.g., "the-name-of-the-wind.epub").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// spaces collapses whitespace runs.
	spaces = regexp.MustCompile(`\s+`)
)

// Fold lower-cases s, strips accents and collapses whitespace.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (é → e + combining acute).
// 2. Removes combining marks.
// 3. Recomposes to NFC and lower-cases.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	return strings.TrimSpace(spaces.ReplaceAllString(result, " "))
}

// From converts an arbitrary Unicode string into a URL-safe slug.
func From(s string) string {
	result := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, Fold(s))

	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
