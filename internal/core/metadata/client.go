// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
)

// maxResponseBytes bounds a catalogue response body.
const maxResponseBytes = 4 << 20

// browserUserAgent is sent to the storefronts, which reject obvious bots.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

var fourDigitYear = regexp.MustCompile(`\b(\d{4})\b`)

// fetch performs a GET and returns the body of a 200 response.
func fetch(context context.Context, client *http.Client, target string, header http.Header) ([]byte, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// browserHeader is the header set used for scraped storefronts.
func browserHeader() http.Header {
	header := http.Header{}
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("User-Agent", browserUserAgent)
	return header
}

// yearIn pulls the first four-digit year out of free text such as
// "published 2011" or "2005-06-01".
func yearIn(text string) *int {
	match := fourDigitYear.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	year, err := strconv.Atoi(match[1])
	if err != nil || year <= 0 {
		return nil
	}
	return &year
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value int) *int {
	if value <= 0 {
		return nil
	}
	return &value
}

func optionalFloat(value float64) *float64 {
	if value <= 0 {
		return nil
	}
	return &value
}
