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

// amazonKindleNode restricts search to the Kindle store.
const amazonKindleNode = "n:154606011"

// Amazon scrapes the amazon.com search page.
type Amazon struct {
	client  *http.Client
	baseURL string
}

func NewAmazon(client *http.Client, baseURL string) *Amazon {
	return &Amazon{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (provider *Amazon) Name() string { return ProviderAmazon }

func (provider *Amazon) Search(context context.Context, query string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("k", query)
	params.Set("rh", amazonKindleNode)

	header := browserHeader()
	header.Set("Origin", "https://www.amazon.com")

	body, err := fetch(context, provider.client, provider.baseURL+"/s?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("amazon: %w", err)
	}

	results, err := parseAmazon(body)
	if err != nil {
		return nil, fmt.Errorf("amazon: %w", err)
	}
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

var (
	amazonItem   = element("div").withAttr("data-component-type", "s-search-result")
	amazonAuthor = element("a").withClass("a-size-base").withClass("s-link-style")
	amazonRating = element("span").withClass("a-icon-alt")
)

// parseAmazon reads organic search results. Sponsored and widget rows lack
// the search-results widget class and are ignored.
func parseAmazon(body []byte) ([]Result, error) {
	document, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var results []Result
	for _, item := range findAll(document, amazonItem) {
		if !isOrganicAmazonResult(item) {
			continue
		}

		title := findText(item, element("h2"))
		if title == "" {
			continue
		}

		result := Result{
			Provider:   ProviderAmazon,
			Title:      title,
			AuthorName: findText(item, amazonAuthor),
			CoverImage: optionalString(findAttr(item, element("img"), "src")),
		}
		if result.AuthorName == "" {
			result.AuthorName = "Unknown"
		}

		// "4.5 out of 5 stars"
		if fields := strings.Fields(findText(item, amazonRating)); len(fields) > 0 {
			if rating, err := strconv.ParseFloat(fields[0], 64); err == nil {
				result.Rating = optionalFloat(rating)
			}
		}

		results = append(results, result)
	}
	return results, nil
}

func isOrganicAmazonResult(item *html.Node) bool {
	widget := findFirst(item, element("div").withAttr("data-csa-c-type", "item"))
	if widget == nil {
		return false
	}
	for _, class := range strings.Fields(getAttr(widget, "class")) {
		if strings.HasPrefix(class, "widgetId=search-results") {
			return true
		}
	}
	return false
}
