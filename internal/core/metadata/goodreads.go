// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Goodreads scrapes the goodreads.com book search page.
type Goodreads struct {
	client  *http.Client
	baseURL string
}

func NewGoodreads(client *http.Client, baseURL string) *Goodreads {
	return &Goodreads{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (provider *Goodreads) Name() string { return ProviderGoodreads }

func (provider *Goodreads) Search(context context.Context, query string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("search_type", "books")

	header := browserHeader()
	header.Set("Origin", "https://www.goodreads.com")

	body, err := fetch(context, provider.client, provider.baseURL+"/search?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("goodreads: %w", err)
	}

	results, err := parseGoodreads(body)
	if err != nil {
		return nil, fmt.Errorf("goodreads: %w", err)
	}
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

var (
	goodreadsRow       = element("tr").withAttr("itemscope", "")
	goodreadsTitle     = element("span").withAttr("itemprop", "name")
	goodreadsAuthor    = element("a").withClass("authorName")
	goodreadsPublished = element("span").withClass("uitext")
	goodreadsRating    = element("span").withClass("minirating")
	goodreadsCover     = element("img").withClass("bookCover")
)

func parseGoodreads(body []byte) ([]Result, error) {
	document, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var results []Result
	for _, row := range findAll(document, goodreadsRow) {
		title := findText(row, goodreadsTitle)
		if title == "" {
			continue
		}

		result := Result{
			Provider:      ProviderGoodreads,
			Title:         title,
			AuthorName:    findText(row, goodreadsAuthor),
			YearPublished: yearIn(publishedText(row)),
			CoverImage:    optionalString(findAttr(row, goodreadsCover, "src")),
		}
		if result.AuthorName == "" {
			result.AuthorName = "Unknown"
		}

		// "4.05 avg rating — 2,262 ratings"
		rating, _, _ := strings.Cut(findText(row, goodreadsRating), "avg rating")
		if value, err := strconv.ParseFloat(strings.TrimSpace(rating), 64); err == nil {
			result.Rating = optionalFloat(value)
		}

		results = append(results, result)
	}
	return results, nil
}

// publishedText returns the "published 2011" fragment of the row's detail
// line, which also carries the rating and edition count.
func publishedText(row *html.Node) string {
	detail := findText(row, goodreadsPublished)
	if index := strings.Index(detail, "published"); index >= 0 {
		return detail[index:]
	}
	return ""
}
