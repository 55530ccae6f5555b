// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libra/internal/platform/middleware"
	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
	"github.com/taibuivan/libra/pkg/pagination"
)

// Handler implements the HTTP layer for the book catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the book endpoints on router.
//
//   - Browsing (Public): list, get, series.
//   - Management (Owner): create, patch, delete.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/books", handler.listBooks)
	router.Get("/books/{id}", handler.getBook)
	router.Get("/series", handler.listSeries)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)

		owner.Post("/books", handler.createBook)
		owner.Patch("/books/{id}", handler.updateBook)
		owner.Delete("/books/{id}", handler.deleteBook)
	})
}

/*
GET /api/v1/books.

Request:
  - q: string (ILIKE over title, author, isbn, year)
  - type: string (ebook, audiobook, physical)
  - status: string (to-read, currently-reading, read, wishlist)
  - series: string
  - author: string
  - page, limit: int

Response:
  - 200: []Book (paginated)
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:  query.Get("q"),
		Type:   Type(query.Get("type")),
		Status: Status(query.Get("status")),
		Series: query.Get("series"),
		Author: query.Get("author"),
	}

	books, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if books == nil {
		books = []*Book{}
	}
	respond.Paginated(writer, books, paginationParams.Meta(total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Get(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

/*
POST /api/v1/books.

Request (Body):
  - title, author: string (required)
  - any optional [Draft] field

Response:
  - 201: Book
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeStrictJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

/*
PATCH /api/v1/books/{id}.

Description: Sparse update. Unknown keys are rejected rather than ignored.

Response:
  - 200: Book
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeStrictJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), bookID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// GET /api/v1/series.
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.Series(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}
