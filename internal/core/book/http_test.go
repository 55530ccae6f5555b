// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/ctxutil"
	"github.com/taibuivan/libra/internal/platform/sec"
)

func newRouter(t *testing.T) (chi.Router, *book.Service) {
	t.Helper()
	service, _, _ := newService()
	router := chi.NewRouter()
	book.NewHandler(service).RegisterRoutes(router)
	return router, service
}

func asOwner(request *http.Request) *http.Request {
	claims := &sec.AuthClaims{Username: "owner", Role: string(sec.RoleOwner)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestHandler_Patch covers strict decoding and owner protection of PATCH /books/{id}.
*/
func TestHandler_Patch(t *testing.T) {
	router, service := newRouter(t)
	created, err := service.Create(context.Background(), book.Draft{Title: "Dune", AuthorName: "Frank Herbert"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   string
		owner  bool
		status int
		want   string
	}{
		{"anonymous", `{"rating": 4}`, false, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown field", `{"rating": 4, "cover_image": "x"}`, true, http.StatusBadRequest, "cover_image"},
		{"invalid rating", `{"rating": 9}`, true, http.StatusBadRequest, "rating"},
		{"ok", `{"rating": 4}`, true, http.StatusOK, `"rating":4`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPatch, "/books/"+strconv.Itoa(created.ID), strings.NewReader(tt.body))
			if tt.owner {
				request = asOwner(request)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.want)
		})
	}
}

func TestHandler_GetAndList(t *testing.T) {
	router, service := newRouter(t)
	_, err := service.Create(context.Background(), book.Draft{Title: "The Hobbit", AuthorName: "J.R.R. Tolkien"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books?limit=5", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"sortable_title":"hobbit"`)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books/42", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books/abc", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
