// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package extract normalises the messy fields found in library exports
(Goodreads, StoryGraph and older Libra CSVs) into canonical values.

Every function is total: unrecognised input yields nil or an empty string,
never an error or a panic. Callers decide whether an absent value is fatal
for a row.
*/
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/pkg/query"
)

// isbnPlaceholder is the all-nines value some exports write for "no ISBN".
const isbnPlaceholder = "9999999999999"

var (
	quotedDigits = regexp.MustCompile(`"(\d+)"`)
	ordinal      = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
	bareYear     = regexp.MustCompile(`\b\d{4}\b`)
)

// Year source keys in priority order.
var (
	yearKeys      = []string{"year published", "publish date", "publishdate"}
	firstYearKeys = []string{"first publish date", "firstpublishdate"}
)

// # ISBN

// ISBN picks isbn13 over isbn when both carry a value and unwraps the
// spreadsheet form ="9781604865301". Empty, ="" and the all-nines placeholder
// are absent.
func ISBN(isbn, isbn13 string) *string {
	short := cleanISBN(isbn)
	long := cleanISBN(isbn13)

	switch {
	case long != "":
		return &long
	case short != "":
		return &short
	default:
		return nil
	}
}

func cleanISBN(raw string) string {
	value := strings.TrimSpace(raw)
	if match := quotedDigits.FindStringSubmatch(value); match != nil {
		value = match[1]
	}

	if value == `=""` || value == isbnPlaceholder {
		return ""
	}
	return value
}

// # Year

// Year reads the publication year from a lower-cased CSV row.
//
// Accepted layouts are 09/14/08, "July 7th 2013" and any text holding a bare
// four-digit year ("December 2002"). Unparsed text longer than ten characters
// is discarded.
func Year(row map[string]string) *int {
	value, ok := lookup(row, yearKeys...)
	if !ok {
		return nil
	}

	// Some exports write the literal "Published" and keep the date elsewhere.
	if value == "Published" {
		if value, ok = lookup(row, firstYearKeys...); !ok {
			return nil
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if date, err := time.Parse("1/2/06", value); err == nil {
		return yearPtr(date.Year())
	}

	cleaned := ordinal.ReplaceAllString(value, "$1")
	if date, err := time.Parse("January 2 2006", cleaned); err == nil {
		return yearPtr(date.Year())
	}

	if len(value) > 3 {
		if match := bareYear.FindString(value); match != "" {
			year, _ := strconv.Atoi(match)
			return yearPtr(year)
		}
	}

	if len(value) > 10 {
		return nil
	}

	if year, err := strconv.Atoi(value); err == nil && year > 0 {
		return yearPtr(year)
	}
	return nil
}

func yearPtr(year int) *int {
	return &year
}

// lookup returns the value of the first key present in row.
func lookup(row map[string]string, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := row[key]; ok {
			return value, true
		}
	}
	return "", false
}

// # Genres

// Genres turns either a list literal such as ['Fiction', 'Fantasy'] or a
// comma-separated string into "Fiction, Fantasy". An empty result is nil.
func Genres(field string) *string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var names []string
	if strings.HasPrefix(field, "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(strings.ReplaceAll(field, "'", `"`)), &decoded); err == nil {
			names = trimAll(decoded)
		} else {
			// Apostrophes inside names break the quote swap; fall back to splitting.
			inner := strings.Trim(field, "[]")
			names = trimAll(strings.Split(inner, ","), `'"`)
		}
	} else {
		names = query.StringSlice(field)
	}

	if len(names) == 0 {
		return nil
	}

	joined := strings.Join(names, ", ")
	return &joined
}

func trimAll(values []string, cutset ...string) []string {
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		for _, set := range cutset {
			value = strings.TrimSpace(strings.Trim(value, set))
		}
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

// # Status

// Status maps a comma-separated shelf list to a reading status. When several
// shelves map, the last one wins.
func Status(shelves string) *book.Status {
	var status *book.Status

	for _, shelf := range query.StringSlice(shelves) {
		switch candidate := book.Status(shelf); candidate {
		case book.StatusCurrentlyReading, book.StatusToRead, book.StatusRead, book.StatusWishlist:
			status = &candidate
		}
	}

	return status
}
