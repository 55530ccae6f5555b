// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/corpus"
	"github.com/taibuivan/libra/internal/core/importer"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/pkg/pointer"
)

// # Fakes

// fakeBooks is an in-memory library keyed by id.
type fakeBooks struct {
	mu     sync.Mutex
	books  map[int]*book.Book
	nextID int
}

func newFakeBooks(seed ...*book.Book) *fakeBooks {
	store := &fakeBooks{books: map[int]*book.Book{}, nextID: 100}
	for _, b := range seed {
		stored := *b
		store.books[b.ID] = &stored
	}
	return store
}

func (store *fakeBooks) FindDuplicate(_ context.Context, title, author string) (*book.Book, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, b := range store.books {
		if strings.EqualFold(b.Title, title) && strings.EqualFold(b.AuthorName, author) {
			return b, nil
		}
	}
	return nil, nil
}

func (store *fakeBooks) Create(_ context.Context, draft book.Draft) (*book.Book, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if draft.Title == "" {
		return nil, apperr.ValidationError("Validation failed")
	}
	store.nextID++
	created := &book.Book{
		ID:             store.nextID,
		Title:          draft.Title,
		AuthorName:     draft.AuthorName,
		BookType:       draft.BookType,
		RemoteImageURL: draft.CoverURL,
	}
	store.books[created.ID] = created
	return created, nil
}

func (store *fakeBooks) Update(_ context.Context, id int, patch book.Patch) (*book.Book, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	existing, ok := store.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	if patch.Rating != nil {
		existing.Rating = patch.Rating
	}
	if patch.Genre != nil {
		existing.Genre = patch.Genre
	}
	return existing, nil
}

type fakeCorpus struct {
	added []corpus.Entry
	fail  error
}

func (pool *fakeCorpus) Add(_ context.Context, entry corpus.Entry) (*corpus.OtherBook, error) {
	if pool.fail != nil {
		return nil, pool.fail
	}
	if entry.Title == "Reject" {
		return nil, apperr.ValidationError("Validation failed")
	}
	pool.added = append(pool.added, entry)
	return &corpus.OtherBook{ID: len(pool.added), Title: entry.Title}, nil
}

type countingInvalidator struct{ calls int }

func (invalidator *countingInvalidator) Invalidate(context.Context) { invalidator.calls++ }

func newService(books *fakeBooks, pool *fakeCorpus, invalidator *countingInvalidator) *importer.Service {
	return importer.NewService(books, pool, invalidator, slog.New(slog.DiscardHandler))
}

var dune = &book.Book{ID: 7, Title: "Dune", AuthorName: "Frank Herbert"}

// # Tests

/*
TestService_ParseMarksDuplicates checks that an existing title/author pair
is flagged in any case, while a different author is not.
*/
func TestService_ParseMarksDuplicates(t *testing.T) {
	service := newService(newFakeBooks(dune), &fakeCorpus{}, &countingInvalidator{})

	text := "DUNE - frank herbert\nDune - Brian Herbert\n"
	result, err := service.ParseNotes(context.Background(), text, importer.NotesTitleAuthor)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	assert.True(t, result.Items[0].ExistingBook)
	require.NotNil(t, result.Items[0].ExistingBookID)
	assert.Equal(t, 7, *result.Items[0].ExistingBookID)

	assert.False(t, result.Items[1].ExistingBook)
	assert.Nil(t, result.Items[1].ExistingBookID)
}

func TestService_ParseCSV(t *testing.T) {
	service := newService(newFakeBooks(dune), &fakeCorpus{}, &countingInvalidator{})

	result, err := service.ParseCSV(context.Background(), strings.NewReader(goodreadsExport))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Report.Parsed)
	assert.True(t, result.Items[0].ExistingBook)
}

/*
TestService_ConfirmPartialFailure runs a three-item batch whose middle item
merges into a missing book; the other two still apply.
*/
func TestService_ConfirmPartialFailure(t *testing.T) {
	books := newFakeBooks(dune)
	service := newService(books, &fakeCorpus{}, &countingInvalidator{})

	items := []importer.ConfirmItem{
		{Action: importer.ActionAdd, BookImport: importer.BookImport{
			Title: "Emma", AuthorName: "Jane Austen", CoverImage: pointer.To("https://img/emma.jpg"),
		}},
		{Action: importer.ActionMerge, BookImport: importer.BookImport{
			Title: "Ghost", AuthorName: "Nobody", ExistingBook: true, ExistingBookID: pointer.To(999),
		}},
		{Action: importer.ActionMerge, BookImport: importer.BookImport{
			Title: "Dune", AuthorName: "Frank Herbert", Rating: pointer.To(4.5), ExistingBookID: pointer.To(7),
		}},
	}

	results := service.Confirm(context.Background(), items)
	require.Len(t, results, 3)

	assert.False(t, results[0].Failed())
	assert.Equal(t, 101, results[0].BookID)
	assert.Equal(t, "https://img/emma.jpg", *books.books[101].RemoteImageURL, "cover is deferred, not fetched")

	assert.True(t, results[1].Failed())
	assert.Equal(t, apperr.CodeNotFound, results[1].Code)
	assert.Equal(t, 1, results[1].Index)

	assert.False(t, results[2].Failed())
	assert.Equal(t, 7, results[2].BookID)
	assert.InDelta(t, 4.5, *books.books[7].Rating, 0.001)
}

func TestService_ConfirmItemErrors(t *testing.T) {
	service := newService(newFakeBooks(), &fakeCorpus{}, &countingInvalidator{})

	tests := []struct {
		name string
		item importer.ConfirmItem
		code string
	}{
		{"default action is add", importer.ConfirmItem{BookImport: importer.BookImport{Title: "A", AuthorName: "B"}}, ""},
		{"merge without target", importer.ConfirmItem{Action: importer.ActionMerge, BookImport: importer.BookImport{Title: "A"}}, apperr.CodeValidation},
		{"unknown action", importer.ConfirmItem{Action: "replace", BookImport: importer.BookImport{Title: "A"}}, apperr.CodeValidation},
		{"invalid add", importer.ConfirmItem{BookImport: importer.BookImport{AuthorName: "B"}}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := service.Confirm(context.Background(), []importer.ConfirmItem{tt.item})
			require.Len(t, results, 1)
			assert.Equal(t, tt.code, results[0].Code)
		})
	}
}

func TestService_ImportCorpus(t *testing.T) {
	pool := &fakeCorpus{}
	invalidator := &countingInvalidator{}
	service := newService(newFakeBooks(), pool, invalidator)

	export := "title,author,genres\nFoundation,Isaac Asimov,\"Science Fiction, Classics\"\nReject,Someone,Drama\n,,\n"
	report, err := service.ImportCorpus(context.Background(), strings.NewReader(export))
	require.NoError(t, err)

	assert.Equal(t, importer.FormatCorpus, report.Format)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, report.Skips, 1)
	assert.Equal(t, 3, report.Skips[0].Line, "rejected row keeps its CSV line")
	assert.Contains(t, report.Skips[0].Reason, `"Reject" rejected`)
	require.Len(t, pool.added, 1)
	assert.Equal(t, "Science Fiction, Classics", *pool.added[0].Genre)
	assert.Equal(t, 1, invalidator.calls)
}

func TestService_ImportCorpusInternalFailure(t *testing.T) {
	invalidator := &countingInvalidator{}
	service := newService(newFakeBooks(), &fakeCorpus{fail: errors.New("connection reset")}, invalidator)

	_, err := service.ImportCorpus(context.Background(), strings.NewReader("title,author\nA,B\n"))
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 0, invalidator.calls)
}
