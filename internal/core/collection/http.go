// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libra/internal/platform/middleware"
	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the collection endpoints.
//
//   - Browsing (Public): list collections, collections of a book.
//   - Management (Owner): create, delete, add and remove members.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/collections", handler.list)
	router.Get("/books/{id}/collections", handler.forBook)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)

		owner.Post("/collections", handler.create)
		owner.Delete("/collections/{id}", handler.delete)
		owner.Post("/collections/{id}/books/{bookID}", handler.addBook)
		owner.Delete("/collections/{id}/books/{bookID}", handler.removeBook)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	collections, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collections)
}

/*
POST /api/v1/collections.

Request (Body):
  - name: string (required, unique)
  - description: string

Response:
  - 201: Collection
  - 409: name already used
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeStrictJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Create(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, collection)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	collectionID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), collectionID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	collectionID, bookID, err := memberIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddBook(request.Context(), collectionID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeBook(writer http.ResponseWriter, request *http.Request) {
	collectionID, bookID, err := memberIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBook(request.Context(), collectionID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// GET /api/v1/books/{id}/collections.
func (handler *Handler) forBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collections, err := handler.service.ForBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collections)
}

func memberIDs(request *http.Request) (int, int, error) {
	collectionID, err := requestutil.IntID(request, "id")
	if err != nil {
		return 0, 0, err
	}
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		return 0, 0, err
	}
	return collectionID, bookID, nil
}
