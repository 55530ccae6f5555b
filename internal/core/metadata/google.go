// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// GoogleBooks queries the Google Books volumes API.
type GoogleBooks struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewGoogleBooks(client *http.Client, baseURL, apiKey string) *GoogleBooks {
	return &GoogleBooks{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (provider *GoogleBooks) Name() string { return ProviderGoogle }

type googleVolumes struct {
	Items []struct {
		VolumeInfo googleVolume `json:"volumeInfo"`
	} `json:"items"`
}

type googleVolume struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors"`
	Publisher           string   `json:"publisher"`
	PublishedDate       string   `json:"publishedDate"`
	Description         string   `json:"description"`
	PageCount           int      `json:"pageCount"`
	Categories          []string `json:"categories"`
	AverageRating       float64  `json:"averageRating"`
	Language            string   `json:"language"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// Search fetches at least ten volumes so the title-distance sort has
// something to choose from, then trims to count.
func (provider *GoogleBooks) Search(context context.Context, query string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(max(count, MaxCount)))
	if provider.apiKey != "" {
		params.Set("key", provider.apiKey)
	}

	body, err := fetch(context, provider.client, provider.baseURL+"/volumes?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google books: %w", err)
	}

	var payload googleVolumes
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("google books: decode: %w", err)
	}

	results := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, item.VolumeInfo.toResult())
	}

	SortByTitleDistance(results, query)
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

func (volume googleVolume) toResult() Result {
	author := "Unknown"
	if len(volume.Authors) > 0 {
		author = volume.Authors[0]
	}

	return Result{
		Provider:      ProviderGoogle,
		Title:         volume.Title,
		AuthorName:    author,
		YearPublished: yearIn(volume.PublishedDate),
		ISBN:          volume.isbn(),
		Rating:        optionalFloat(volume.AverageRating),
		Genre:         optionalString(googleCategories(volume.Categories)),
		Language:      optionalString(volume.Language),
		Synopsis:      optionalString(volume.Description),
		PageCount:     optionalInt(volume.PageCount),
		Publisher:     optionalString(volume.Publisher),
		CoverImage:    optionalString(volume.ImageLinks.Thumbnail),
	}
}

// isbn prefers ISBN_13 and falls back to ISBN_10.
func (volume googleVolume) isbn() *string {
	var fallback string
	for _, identifier := range volume.IndustryIdentifiers {
		switch identifier.Type {
		case "ISBN_13":
			return optionalString(identifier.Identifier)
		case "ISBN_10":
			fallback = identifier.Identifier
		}
	}
	return optionalString(fallback)
}

// googleCategories flattens categories like "Fiction & Fantasy" into
// "Fiction, Fantasy".
func googleCategories(categories []string) string {
	var parts []string
	for _, category := range categories {
		for _, part := range strings.Split(strings.ReplaceAll(category, "&", ","), ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	}
	return strings.Join(parts, ", ")
}
