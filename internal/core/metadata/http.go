// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

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

// RegisterRoutes mounts the metadata endpoints.
//
//   - Lookup (Public): search a provider, list providers, match a book.
//   - Covers (Owner): queue a cover refresh from a provider.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/metadata/providers", handler.providers)
	router.Get("/metadata/search", handler.search)
	router.Get("/books/{id}/match", handler.match)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)
		owner.Post("/books/{id}/cover/refresh", handler.refreshCover)
	})
}

func (handler *Handler) providers(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Providers())
}

/*
GET /api/v1/metadata/search.

Request:
  - provider: google | openlibrary | amazon | goodreads
  - q: string (required)
  - count: int (default 1, clamped to 1..10)

Response:
  - 200: []Result
  - 502: provider error
  - 503: provider circuit open
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	results, err := handler.service.Search(
		request.Context(),
		query.Get(FieldProvider),
		query.Get(FieldQuery),
		requestutil.QueryInt(request, "count", DefaultCount),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

// GET /api/v1/books/{id}/match?provider=google&count=5.
func (handler *Handler) match(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	results, err := handler.service.Match(
		request.Context(),
		bookID,
		request.URL.Query().Get(FieldProvider),
		requestutil.QueryInt(request, "count", MatchCount),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

type refreshResponse struct {
	CoverURL string `json:"cover_url"`
}

/*
POST /api/v1/books/{id}/cover/refresh?provider=google.

Response:
  - 200: {cover_url}; the download happens in the background
  - 404: book unknown or no result carries a cover
*/
func (handler *Handler) refreshCover(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	coverURL, err := handler.service.RefreshCover(request.Context(), bookID, request.URL.Query().Get(FieldProvider))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, refreshResponse{CoverURL: coverURL})
}
