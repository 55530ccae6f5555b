// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/metadata"
	"github.com/taibuivan/libra/pkg/pointer"
)

func serve(t *testing.T, path, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != path {
			http.NotFound(writer, request)
			return
		}
		writer.Header().Set("Content-Type", contentType)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "dune", 4},
		{"dune", "", 4},
		{"dune", "dune", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, metadata.Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, metadata.Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSortByTitleDistance_Stable(t *testing.T) {
	results := []metadata.Result{
		{Title: "Dune Messiah"},
		{Title: "DUNE"},
		{Title: "Dunk"},
		{Title: "Dune"},
	}

	metadata.SortByTitleDistance(results, "dune")

	titles := []string{results[0].Title, results[1].Title, results[2].Title, results[3].Title}
	assert.Equal(t, []string{"DUNE", "Dune", "Dunk", "Dune Messiah"}, titles)
}

const googleResponse = `{
  "items": [
    {"volumeInfo": {
      "title": "Dune Messiah",
      "authors": ["Frank Herbert"],
      "publishedDate": "1969",
      "categories": ["Fiction"]
    }},
    {"volumeInfo": {
      "title": "Dune",
      "authors": ["Frank Herbert", "Brian Herbert"],
      "publisher": "Ace",
      "publishedDate": "2005-08-02",
      "description": "Set on the desert planet Arrakis.",
      "pageCount": 896,
      "categories": ["Fiction & Science Fiction", "Classics"],
      "averageRating": 4.5,
      "language": "en",
      "industryIdentifiers": [
        {"type": "ISBN_10", "identifier": "0441013597"},
        {"type": "ISBN_13", "identifier": "9780441013593"}
      ],
      "imageLinks": {"thumbnail": "http://books.google.com/dune.jpg"}
    }},
    {"volumeInfo": {"title": "Anonymous Work"}}
  ]
}`

/*
TestGoogleBooks_Search checks field mapping and that the closest title wins
even when the API ranks it lower.
*/
func TestGoogleBooks_Search(t *testing.T) {
	server := serve(t, "/volumes", "application/json", googleResponse)
	provider := metadata.NewGoogleBooks(server.Client(), server.URL, "key")

	results, err := provider.Search(t.Context(), "Dune", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	dune := results[0]
	assert.Equal(t, metadata.ProviderGoogle, dune.Provider)
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.AuthorName)
	assert.Equal(t, 2005, pointer.Val(dune.YearPublished))
	assert.Equal(t, "9780441013593", pointer.Val(dune.ISBN))
	assert.Equal(t, "Fiction, Science Fiction, Classics", pointer.Val(dune.Genre))
	assert.Equal(t, 896, pointer.Val(dune.PageCount))
	assert.Equal(t, "Ace", pointer.Val(dune.Publisher))
	assert.InDelta(t, 4.5, pointer.Val(dune.Rating), 0.001)

	all, err := provider.Search(t.Context(), "Dune", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Unknown", all[2].AuthorName)
	assert.Nil(t, all[2].ISBN)
}

func TestGoogleBooks_UpstreamError(t *testing.T) {
	server := serve(t, "/elsewhere", "application/json", "{}")
	provider := metadata.NewGoogleBooks(server.Client(), server.URL, "")

	_, err := provider.Search(t.Context(), "Dune", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

const openLibraryResponse = `{
  "docs": [
    {
      "title": "Dune",
      "author_name": ["Frank Herbert"],
      "first_publish_year": 1965,
      "isbn": ["9780441172719"],
      "subject": ["Science fiction", "Dune (Imaginary place)", "Fiction", "Ecology", "Deserts", "Politics"],
      "language": ["eng", "spa"],
      "number_of_pages_median": 612,
      "cover_i": 11481354
    },
    {"title": "Dune Messiah", "author_name": ["Frank Herbert"]}
  ]
}`

func TestOpenLibrary_Search(t *testing.T) {
	server := serve(t, "/search.json", "application/json", openLibraryResponse)
	provider := metadata.NewOpenLibrary(server.Client(), server.URL)

	results, err := provider.Search(t.Context(), "Dune", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	dune := results[0]
	assert.Equal(t, "Frank Herbert", dune.AuthorName)
	assert.Equal(t, 1965, pointer.Val(dune.YearPublished))
	assert.Equal(t, 612, pointer.Val(dune.PageCount))
	assert.Equal(t, "eng, spa", pointer.Val(dune.Language))
	assert.Equal(t, "Science fiction, Dune (Imaginary place), Fiction, Ecology, Deserts", pointer.Val(dune.Genre))
	assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-L.jpg", pointer.Val(dune.CoverImage))
}

const amazonPage = `<html><body>
<div data-component-type="s-search-result">
  <div data-csa-c-type="item" class="s-widget widgetId=search-results_1">
    <img class="s-image" src="https://m.media-amazon.com/dune.jpg">
    <h2><a><span>Dune</span></a></h2>
    <a class="a-size-base a-link-normal s-underline-text s-underline-link-text s-link-style" href="/author">Frank Herbert</a>
    <span class="a-icon-alt">4.6 out of 5 stars</span>
  </div>
</div>
<div data-component-type="s-search-result">
  <div data-csa-c-type="item" class="s-widget widgetId=sponsored-products">
    <h2><span>Sponsored Dune Poster</span></h2>
  </div>
</div>
<div data-component-type="s-search-result">
  <div data-csa-c-type="item" class="widgetId=search-results_2">
    <h2><span>Dune Messiah</span></h2>
  </div>
</div>
</body></html>`

func TestAmazon_Search(t *testing.T) {
	server := serve(t, "/s", "text/html", amazonPage)
	provider := metadata.NewAmazon(server.Client(), server.URL)

	results, err := provider.Search(t.Context(), "dune", 5)
	require.NoError(t, err)
	require.Len(t, results, 2, "sponsored rows are skipped")

	assert.Equal(t, "Dune", results[0].Title)
	assert.Equal(t, "Frank Herbert", results[0].AuthorName)
	assert.Equal(t, "https://m.media-amazon.com/dune.jpg", pointer.Val(results[0].CoverImage))
	assert.InDelta(t, 4.6, pointer.Val(results[0].Rating), 0.001)

	assert.Equal(t, "Dune Messiah", results[1].Title)
	assert.Equal(t, "Unknown", results[1].AuthorName)
	assert.Nil(t, results[1].Rating)
}

const goodreadsPage = `<html><body><table>
<tr itemscope itemtype="http://schema.org/Book">
  <td><img class="bookCover" src="https://images.gr-assets.com/dune.jpg"></td>
  <td>
    <a class="bookTitle"><span itemprop="name">Dune (Dune, #1)</span></a>
    <span itemprop="author"><a class="authorName"><span itemprop="name">Frank Herbert</span></a></span>
    <span class="greyText smallText uitext">
      <span class="minirating">4.28 avg rating — 1,456,789 ratings</span>
      — published 1965 — 412 editions
    </span>
  </td>
</tr>
<tr itemscope itemtype="http://schema.org/Book">
  <td>
    <a class="bookTitle"><span itemprop="name">Dune Messiah</span></a>
    <span itemprop="author"><a class="authorName"><span itemprop="name">Frank Herbert</span></a></span>
    <span class="greyText smallText uitext">
      <span class="minirating">3.89 avg rating — 310,000 ratings</span>
    </span>
  </td>
</tr>
</table></body></html>`

func TestGoodreads_Search(t *testing.T) {
	server := serve(t, "/search", "text/html", goodreadsPage)
	provider := metadata.NewGoodreads(server.Client(), server.URL)

	results, err := provider.Search(t.Context(), "dune", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Dune (Dune, #1)", results[0].Title)
	assert.Equal(t, "Frank Herbert", results[0].AuthorName)
	assert.Equal(t, 1965, pointer.Val(results[0].YearPublished))
	assert.InDelta(t, 4.28, pointer.Val(results[0].Rating), 0.001)
	assert.Equal(t, "https://images.gr-assets.com/dune.jpg", pointer.Val(results[0].CoverImage))

	assert.Nil(t, results[1].YearPublished)
	assert.Nil(t, results[1].CoverImage, "covers are read per row")
	assert.InDelta(t, 3.89, pointer.Val(results[1].Rating), 0.001)

	limited, err := provider.Search(t.Context(), "dune", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
