// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/author"
	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/apperr"
)

type memoryRepo struct {
	mu      sync.Mutex
	authors []*author.Author
}

func (repo *memoryRepo) List(_ context.Context, limit, offset int) ([]*author.Author, int, error) {
	return repo.authors, len(repo.authors), nil
}

func (repo *memoryRepo) FindByID(_ context.Context, id int) (*author.Author, error) {
	for _, a := range repo.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperr.NotFound("Author")
}

func (repo *memoryRepo) GetOrCreate(_ context.Context, candidate *author.Author) (*author.Author, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, a := range repo.authors {
		if a.Name == candidate.Name {
			return a, nil
		}
	}
	created := *candidate
	created.ID = len(repo.authors) + 1
	repo.authors = append(repo.authors, &created)
	return &created, nil
}

/*
TestService_GetOrCreateByName derives surname fields and matches names exactly.
*/
func TestService_GetOrCreateByName(t *testing.T) {
	repo := &memoryRepo{}
	service := author.NewService(repo, slog.New(slog.DiscardHandler))
	context := context.Background()

	herbert, err := service.GetOrCreateByName(context, " Frank Herbert ")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", herbert.Name)
	assert.Equal(t, "Herbert", herbert.Surname)
	assert.Equal(t, "Herbert Frank", herbert.SurnameFirst)

	again, err := service.ResolveID(context, "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, herbert.ID, again)

	// Exact match is case-sensitive.
	lower, err := service.ResolveID(context, "frank herbert")
	require.NoError(t, err)
	assert.NotEqual(t, herbert.ID, lower)

	homer, err := service.GetOrCreateByName(context, "Homer")
	require.NoError(t, err)
	assert.Equal(t, "", homer.Surname)
	assert.Equal(t, "Homer", homer.SurnameFirst)

	_, err = service.GetOrCreateByName(context, "   ")
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
}

type stubBooks struct {
	filter book.Filter
}

func (stub *stubBooks) List(_ context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error) {
	stub.filter = filter
	return []*book.Book{{ID: 7, Title: "Dune"}}, 1, nil
}

func TestHandler_AuthorBooks(t *testing.T) {
	repo := &memoryRepo{}
	service := author.NewService(repo, slog.New(slog.DiscardHandler))
	_, err := service.GetOrCreateByName(context.Background(), "Frank Herbert")
	require.NoError(t, err)

	books := &stubBooks{}
	router := chi.NewRouter()
	author.NewHandler(service, books).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/authors/1/books", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, books.filter.AuthorID)
	assert.Contains(t, recorder.Body.String(), `"title":"Dune"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/authors/99/books", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
