// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/apperr"
)

// NotesFormat says which side of "A - B" holds the title.
type NotesFormat string

const (
	NotesTitleAuthor NotesFormat = "titleAuthor"
	NotesAuthorTitle NotesFormat = "authorTitle"
)

// ParseNotesFormat validates a format hint. Blank means [NotesTitleAuthor].
func ParseNotesFormat(value string) (NotesFormat, error) {
	switch format := NotesFormat(strings.TrimSpace(value)); format {
	case "":
		return NotesTitleAuthor, nil
	case NotesTitleAuthor, NotesAuthorTitle:
		return format, nil
	default:
		return "", apperr.ValidationError("Unknown notes format", apperr.FieldError{
			Field:   "format",
			Message: "Must be one of: titleAuthor, authorTitle",
		})
	}
}

var bullets = []string{"- ", "* ", "• "}

// formatKeywords maps a trailing word to the book format it denotes.
var formatKeywords = map[string]book.Type{
	"pdf":       book.TypeEbook,
	"epub":      book.TypeEbook,
	"mobi":      book.TypeEbook,
	"physical":  book.TypePhysical,
	"audiobook": book.TypeAudiobook,
}

/*
ParseNotes reads one book per line from free text.

Description: A line is either "Title - Author" (sides swapped for
[NotesAuthorTitle]) or "Title (Author)". A leading list bullet is dropped and
a trailing format keyword such as "epub" becomes the book type. Blank lines
are ignored; any other unrecognised line is skipped and counted.

Example:

	- Dune (Frank Herbert) epub  ->  {Title: "Dune", AuthorName: "Frank Herbert", BookType: ebook}
*/
func ParseNotes(text string, format NotesFormat) ([]BookImport, Report) {
	report := Report{Format: FormatNotes}
	items := []BookImport{}

	for index, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		item, ok := parseNoteLine(line, format)
		if !ok {
			report.skip(index+1, "unrecognised line: "+line)
			continue
		}
		item.line = index + 1
		items = append(items, item)
		report.Parsed++
	}

	return items, report
}

func parseNoteLine(line string, format NotesFormat) (BookImport, bool) {
	for _, bullet := range bullets {
		if rest, ok := strings.CutPrefix(line, bullet); ok {
			line = strings.TrimSpace(rest)
			break
		}
	}

	bookType, line := cutFormatKeyword(line)

	var title, author string
	if left, right, ok := strings.Cut(line, " - "); ok {
		title, author = left, right
		if format == NotesAuthorTitle {
			title, author = right, left
		}
	} else if open := strings.Index(line, " ("); open >= 0 {
		end := strings.Index(line[open:], ")")
		if end < 0 {
			return BookImport{}, false
		}
		title, author = line[:open], line[open+2:open+end]
	} else {
		return BookImport{}, false
	}

	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return BookImport{}, false
	}

	return BookImport{Title: title, AuthorName: author, BookType: bookType}, true
}

// formatSeparators may sit between the author and a trailing format word,
// as in "Dune - Frank Herbert - epub".
const formatSeparators = " \t-,:"

// cutFormatKeyword removes a trailing format word and returns its book type.
func cutFormatKeyword(line string) (*book.Type, string) {
	index := strings.LastIndexAny(line, " \t")
	if index < 0 {
		return nil, line
	}

	word := strings.ToLower(strings.Trim(line[index+1:], "[]()"))
	bookType, ok := formatKeywords[word]
	if !ok {
		return nil, line
	}
	return &bookType, strings.TrimRight(line[:index], formatSeparators)
}
