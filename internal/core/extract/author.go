// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRun       = regexp.MustCompile(`\s+`)
	trailingParenthesis = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
)

// MainAuthor returns the primary author of a credit line.
//
//	"Tolkien, J.R.R."                     -> "J.R.R. Tolkien"
//	"Jane Doe (Editor)"                   -> "Jane Doe"
//	"Jane Doe (Editor, Foreword), Bob Roe" -> "Jane Doe"
func MainAuthor(credit string) string {
	credit = strings.TrimSpace(whitespaceRun.ReplaceAllString(credit, " "))
	if credit == "" {
		return ""
	}

	parts := splitTopLevel(credit)

	// "Surname, Given Names" with no annotation is a reordered single author.
	if len(parts) == 2 && !strings.ContainsAny(credit, "()") {
		surname := strings.TrimSpace(parts[0])
		given := strings.TrimSpace(parts[1])
		if surname != "" && given != "" {
			return given + " " + surname
		}
	}

	main := strings.TrimSpace(parts[0])
	main = trailingParenthesis.ReplaceAllString(main, "")
	return strings.TrimSpace(main)
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(text string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, text[start:])
}

// CapitalizeName title-cases each period-separated segment and joins them with
// spaces, so "j.r.r. tolkien" and "J. R. R. Tolkien" compare equal.
func CapitalizeName(name string) string {
	caser := cases.Title(language.Und)

	var segments []string
	for _, segment := range strings.Split(name, ".") {
		segment = strings.TrimSpace(whitespaceRun.ReplaceAllString(segment, " "))
		if segment != "" {
			segments = append(segments, caser.String(segment))
		}
	}

	return strings.Join(segments, " ")
}

// SplitAuthorName splits a full name on its last whitespace run. A single
// token has no surname. surnameFirst is the "Surname Given" sort key.
func SplitAuthorName(name string) (surname, surnameFirst string) {
	name = strings.TrimSpace(name)

	cut := strings.LastIndexFunc(name, unicode.IsSpace)
	if cut < 0 {
		return "", name
	}

	given := strings.TrimSpace(name[:cut])
	surname = strings.TrimSpace(name[cut:])
	return surname, strings.TrimSpace(surname + " " + given)
}
