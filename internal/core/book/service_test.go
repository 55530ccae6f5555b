// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/pkg/pointer"
)

// # Fakes

type fakeRepo struct {
	books  map[int]*book.Book
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: map[int]*book.Book{}, nextID: 1}
}

func (repo *fakeRepo) List(_ context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range repo.books {
		if filter.Type != "" && b.BookType != filter.Type {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortableTitle < out[j].SortableTitle })
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int) (*book.Book, error) {
	if b, ok := repo.books[id]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func (repo *fakeRepo) FindByTitleAndAuthor(_ context.Context, title, authorName string) (*book.Book, error) {
	for id := 1; id < repo.nextID; id++ {
		b, ok := repo.books[id]
		if ok && strings.EqualFold(b.Title, title) && strings.EqualFold(b.AuthorName, authorName) {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (repo *fakeRepo) Create(_ context.Context, b *book.Book) error {
	b.ID = repo.nextID
	b.CreatedAt = time.Now()
	repo.nextID++
	repo.books[b.ID] = b
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, id int, patch book.Patch, authorID int, sortable *string) error {
	b, ok := repo.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if sortable != nil {
		b.SortableTitle = *sortable
	}
	if authorID != 0 {
		b.AuthorID = authorID
		b.AuthorName = *patch.AuthorName
	}
	if patch.Rating != nil {
		b.Rating = patch.Rating
	}
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := repo.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(repo.books, id)
	return nil
}

func (repo *fakeRepo) ListSeries(context.Context) ([]string, error) { return nil, nil }

type fakeAuthors struct {
	ids map[string]int
}

func (authors *fakeAuthors) ResolveID(_ context.Context, name string) (int, error) {
	if id, ok := authors.ids[name]; ok {
		return id, nil
	}
	id := len(authors.ids) + 1
	authors.ids[name] = id
	return id, nil
}

func newService() (*book.Service, *fakeRepo, *fakeAuthors) {
	repo := newFakeRepo()
	authors := &fakeAuthors{ids: map[string]int{}}
	return book.NewService(repo, authors, slog.New(slog.DiscardHandler)), repo, authors
}

// # Tests

func TestSortableTitle(t *testing.T) {
	tests := map[string]string{
		"The Hobbit":        "hobbit",
		"A Game of Thrones": "game of thrones",
		"An Unquiet Mind":   "unquiet mind",
		"Anathem":           "anathem",
		"The":               "the",
		"Ébène":             "ebene",
	}
	for in, want := range tests {
		assert.Equal(t, want, book.SortableTitle(in), in)
	}
}

/*
TestService_Create resolves the author and derives the sortable title and the
default format.
*/
func TestService_Create(t *testing.T) {
	service, repo, authors := newService()

	created, err := service.Create(context.Background(), book.Draft{
		Title:      "  The Left Hand of Darkness ",
		AuthorName: "Ursula K. Le Guin",
		CoverURL:   pointer.To("https://example.com/cover.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, "The Left Hand of Darkness", created.Title)
	assert.Equal(t, "left hand of darkness", created.SortableTitle)
	assert.Equal(t, book.TypeEbook, created.BookType)
	assert.Equal(t, authors.ids["Ursula K. Le Guin"], created.AuthorID)
	assert.Equal(t, "https://example.com/cover.jpg", pointer.Val(created.RemoteImageURL))
	assert.Len(t, repo.books, 1)
}

func TestService_Create_Validation(t *testing.T) {
	service, repo, _ := newService()

	_, err := service.Create(context.Background(), book.Draft{
		Title:    "",
		Rating:   pointer.To(7.5),
		BookType: book.Type("scroll"),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 4)
	assert.Empty(t, repo.books)
}

/*
TestService_Update recomputes the sortable title only when the title changes.
*/
func TestService_Update(t *testing.T) {
	service, _, _ := newService()
	context := context.Background()

	created, err := service.Create(context, book.Draft{Title: "Dune", AuthorName: "Frank Herbert"})
	require.NoError(t, err)

	updated, err := service.Update(context, created.ID, book.Patch{Title: pointer.To("The Dune Chronicles")})
	require.NoError(t, err)
	assert.Equal(t, "dune chronicles", updated.SortableTitle)

	updated, err = service.Update(context, created.ID, book.Patch{Rating: pointer.To(4.5)})
	require.NoError(t, err)
	assert.Equal(t, "dune chronicles", updated.SortableTitle)
	assert.Equal(t, 4.5, pointer.Val(updated.Rating))

	_, err = service.Update(context, created.ID, book.Patch{})
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

	_, err = service.Update(context, 999, book.Patch{Rating: pointer.To(1.0)})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_FindDuplicate matches title and author case-insensitively and
nothing else.
*/
func TestService_FindDuplicate(t *testing.T) {
	service, _, _ := newService()
	context := context.Background()

	created, err := service.Create(context, book.Draft{Title: "Dune", AuthorName: "Frank Herbert"})
	require.NoError(t, err)

	found, err := service.FindDuplicate(context, "DUNE", "frank herbert")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	found, err = service.FindDuplicate(context, "Dune", "Brian Herbert")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = service.FindDuplicate(context, "Dune Messiah", "Frank Herbert")
	require.NoError(t, err)
	assert.Nil(t, found)
}

type recordingAttachments struct {
	removed []int
	err     error
}

func (store *recordingAttachments) RemoveBook(bookID int) error {
	store.removed = append(store.removed, bookID)
	return store.err
}

func TestService_DeleteRemovesAttachments(t *testing.T) {
	service, _, _ := newService()
	covers := &recordingAttachments{}
	files := &recordingAttachments{err: errors.New("disk full")}
	service.WithAttachments(covers, files)

	created, err := service.Create(context.Background(), book.Draft{Title: "Emma", AuthorName: "Jane Austen"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Equal(t, []int{created.ID}, covers.removed)
	assert.Equal(t, []int{created.ID}, files.removed, "cleanup continues past a failing store")

	err = service.Delete(context.Background(), created.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.Len(t, covers.removed, 1, "nothing is removed for an unknown book")
}
