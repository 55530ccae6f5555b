// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/extract"
	"github.com/taibuivan/libra/internal/platform/apperr"
)

// Column aliases in priority order. Goodreads, StoryGraph and older Libra
// exports all name these differently.
var (
	ratingColumns   = []string{"average rating", "my rating", "rating"}
	pagesColumns    = []string{"number of pages", "pages"}
	authorColumns   = []string{"author", "author l-f"}
	shelvesColumns  = []string{"bookshelves", "exclusive shelf"}
	yearColumns     = []string{"year published", "publish date", "publishdate"}
	synopsisColumns = []string{"description", "synopsis"}
)

const byteOrderMark = "\ufeff"

// row is one CSV record keyed by its lower-cased header.
type row map[string]string

// first returns the first non-blank value among keys.
func (r row) first(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(r[key]); value != "" {
			return value
		}
	}
	return ""
}

// present returns the trimmed value of the first key present, even if blank.
func (r row) present(keys ...string) string {
	for _, key := range keys {
		if value, ok := r[key]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (r row) optional(keys ...string) *string {
	if value := r.first(keys...); value != "" {
		return &value
	}
	return nil
}

/*
ParseCSV reads a library export into import candidates.

Description: Header names are matched case-insensitively. Rows without a
title or author are skipped silently; rows whose rating, page count or year
cannot be parsed are skipped with a reason in the [Report]. A bad row never
aborts the import; only an unreadable header does.
*/
func ParseCSV(reader io.Reader) ([]BookImport, Report, error) {
	report := Report{Format: FormatCSV}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	header, err := readHeader(csvReader)
	if err != nil {
		return nil, report, err
	}

	items := []BookImport{}
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.skip(parseErr.StartLine, "malformed row: "+parseErr.Err.Error())
				continue
			}
			return nil, report, apperr.ValidationError("Could not read CSV: " + err.Error())
		}
		line, _ := csvReader.FieldPos(0)

		values := make(row, len(header))
		for index, name := range header {
			if index < len(record) {
				values[name] = record[index]
			}
		}

		item, reason, ok := parseRow(values)
		if !ok {
			report.skip(line, reason)
			continue
		}
		item.line = line
		items = append(items, item)
		report.Parsed++
	}

	return items, report, nil
}

func readHeader(reader *csv.Reader) ([]string, error) {
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.ValidationError("CSV file is empty")
	}
	if err != nil {
		return nil, apperr.ValidationError("Could not read CSV header: " + err.Error())
	}

	names := make([]string, len(header))
	for index, name := range header {
		if index == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		names[index] = strings.ToLower(strings.TrimSpace(name))
	}
	return names, nil
}

// parseRow maps one record onto a candidate. An empty reason means the row
// was skipped silently.
func parseRow(values row) (BookImport, string, bool) {
	title := values.first("title")
	author := extract.MainAuthor(values.first(authorColumns...))
	if title == "" || author == "" {
		return BookImport{}, "", false
	}

	rating, err := parseFloat(values.first(ratingColumns...))
	if err != nil {
		return BookImport{}, fmt.Sprintf("invalid rating for %q", title), false
	}

	pages, err := parseInt(values.first(pagesColumns...))
	if err != nil {
		return BookImport{}, fmt.Sprintf("invalid page count for %q", title), false
	}

	year := extract.Year(values)
	if raw := values.present(yearColumns...); year == nil && raw != "" && raw != "Published" {
		return BookImport{}, fmt.Sprintf("invalid year for %q", title), false
	}

	bookType := book.TypeEbook
	item := BookImport{
		Title:         title,
		AuthorName:    author,
		BookType:      &bookType,
		Status:        extract.Status(values.first(shelvesColumns...)),
		Rating:        rating,
		Genre:         extract.Genres(values.first("genres")),
		ISBN:          extract.ISBN(values["isbn"], values["isbn13"]),
		Synopsis:      values.optional(synopsisColumns...),
		PageCount:     pages,
		YearPublished: year,
		Series:        seriesName(values.first("series")),
		CoverImage:    values.optional("coverimg"),
		Language:      values.optional("language"),
	}
	return item, "", true
}

// seriesName keeps the text before the volume marker: "Dune #1" is "Dune".
func seriesName(value string) *string {
	name, _, _ := strings.Cut(value, "#")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}

func parseFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
