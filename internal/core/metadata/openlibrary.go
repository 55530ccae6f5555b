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

const openLibraryCoverURL = "https://covers.openlibrary.org/b/id/%d-L.jpg"

// maxSubjects caps how many Open Library subjects become the genre string.
const maxSubjects = 5

// OpenLibrary queries the Open Library search API.
type OpenLibrary struct {
	client  *http.Client
	baseURL string
}

func NewOpenLibrary(client *http.Client, baseURL string) *OpenLibrary {
	return &OpenLibrary{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (provider *OpenLibrary) Name() string { return ProviderOpenLibrary }

type openLibrarySearch struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	Subject          []string `json:"subject"`
	Language         []string `json:"language"`
	Publisher        []string `json:"publisher"`
	NumberOfPages    int      `json:"number_of_pages_median"`
	CoverID          int      `json:"cover_i"`
	RatingsAverage   float64  `json:"ratings_average"`
	FirstSentence    []string `json:"first_sentence"`
}

func (provider *OpenLibrary) Search(context context.Context, query string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("title", query)
	params.Set("fields", "*")
	params.Set("limit", strconv.Itoa(count))

	body, err := fetch(context, provider.client, provider.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	var payload openLibrarySearch
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("open library: decode: %w", err)
	}

	results := make([]Result, 0, len(payload.Docs))
	for _, doc := range payload.Docs {
		results = append(results, doc.toResult())
		if len(results) == count {
			break
		}
	}
	return results, nil
}

func (doc openLibraryDoc) toResult() Result {
	result := Result{
		Provider:      ProviderOpenLibrary,
		Title:         doc.Title,
		AuthorName:    "Unknown",
		YearPublished: optionalInt(doc.FirstPublishYear),
		Rating:        optionalFloat(doc.RatingsAverage),
		PageCount:     optionalInt(doc.NumberOfPages),
		Language:      optionalString(strings.Join(doc.Language, ", ")),
	}

	if len(doc.AuthorName) > 0 {
		result.AuthorName = doc.AuthorName[0]
	}
	if len(doc.ISBN) > 0 {
		result.ISBN = optionalString(doc.ISBN[0])
	}
	if len(doc.Publisher) > 0 {
		result.Publisher = optionalString(doc.Publisher[0])
	}
	if len(doc.FirstSentence) > 0 {
		result.Synopsis = optionalString(doc.FirstSentence[0])
	}

	subjects := doc.Subject
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}
	result.Genre = optionalString(strings.Join(subjects, ", "))

	if doc.CoverID > 0 {
		cover := fmt.Sprintf(openLibraryCoverURL, doc.CoverID)
		result.CoverImage = &cover
	}
	return result
}
