// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
)

// Result count bounds for the HTTP endpoint.
const (
	DefaultCount = 10
	MaxCount     = 20
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/recommendations/{bookID}", handler.recommend)
}

/*
GET /api/v1/recommendations/{bookID}.

Request:
  - count: int (default 10, clamped to 1..20)

Response:
  - 200: []Recommendation (empty when the book is unknown)
*/
func (handler *Handler) recommend(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count := ClampCount(requestutil.QueryInt(request, "count", DefaultCount))

	recommendations, err := handler.service.Recommend(request.Context(), bookID, count)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recommendations)
}

// ClampCount bounds a requested result count to 1..MaxCount.
func ClampCount(count int) int {
	switch {
	case count < 1:
		return 1
	case count > MaxCount:
		return MaxCount
	default:
		return count
	}
}
