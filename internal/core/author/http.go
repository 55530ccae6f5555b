// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libra/internal/core/book"
	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
	"github.com/taibuivan/libra/pkg/pagination"
)

// BookLister lists books for the author pages. Satisfied by [*book.Service].
type BookLister interface {
	List(context context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error)
}

type Handler struct {
	service *Service
	books   BookLister
}

func NewHandler(service *Service, books BookLister) *Handler {
	return &Handler{service: service, books: books}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/authors", handler.listAuthors)
	router.Get("/authors/{id}", handler.getAuthor)
	router.Get("/authors/{id}/books", handler.listAuthorBooks)
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	authors, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if authors == nil {
		authors = []*Author{}
	}
	respond.Paginated(writer, authors, paginationParams.Meta(total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.Get(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) listAuthorBooks(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 404 for an unknown author rather than an empty page.
	if _, err := handler.service.Get(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	books, total, err := handler.books.List(request.Context(), book.Filter{AuthorID: authorID}, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if books == nil {
		books = []*book.Book{}
	}
	respond.Paginated(writer, books, paginationParams.Meta(total))
}
