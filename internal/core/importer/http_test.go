// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/importer"
	"github.com/taibuivan/libra/internal/platform/ctxutil"
	"github.com/taibuivan/libra/internal/platform/sec"
)

func newRouter() chi.Router {
	service := newService(newFakeBooks(dune), &fakeCorpus{}, &countingInvalidator{})
	router := chi.NewRouter()
	importer.NewHandler(service).RegisterRoutes(router)
	return router
}

func asOwner(request *http.Request) *http.Request {
	claims := &sec.AuthClaims{Username: "owner", Role: string(sec.RoleOwner)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestHandler_Notes covers body validation and the parse response shape.
*/
func TestHandler_Notes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		owner  bool
		status int
		want   string
	}{
		{"anonymous", `{"notes": "Dune - Frank Herbert"}`, false, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"missing notes", `{"format": "titleAuthor"}`, true, http.StatusBadRequest, "notes"},
		{"bad format", `{"notes": "x - y", "format": "sideways"}`, true, http.StatusBadRequest, "format"},
		{"unknown key", `{"notes": "x - y", "mode": "fast"}`, true, http.StatusBadRequest, "mode"},
		{"ok", `{"notes": "- Dune (Frank Herbert) epub"}`, true, http.StatusOK, `"existing_book_id":7`},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/import/notes", strings.NewReader(tt.body))
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

func TestHandler_ConfirmMultiStatus(t *testing.T) {
	body := `[
		{"action": "add", "title": "Emma", "author": "Jane Austen", "existing_book": false},
		{"action": "merge", "title": "Ghost", "author": "Nobody", "existing_book": true, "existing_book_id": 999}
	]`

	request := asOwner(httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body)))
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMultiStatus, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
	assert.Contains(t, recorder.Body.String(), `"book_id":101`)
}

func TestHandler_ConfirmRejectsUnknownKeys(t *testing.T) {
	body := `[{"action": "merge", "existing_book_id": 7, "cover_image_tiny": "x"}]`

	request := asOwner(httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body)))
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cover_image_tiny")
}

func TestHandler_ConfirmEmpty(t *testing.T) {
	request := asOwner(httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(`[]`)))
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_CSVUpload(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "goodreads.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(goodreadsExport))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := asOwner(httptest.NewRequest(http.MethodPost, "/import/csv", &body))
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"parsed":2`)
	assert.Contains(t, recorder.Body.String(), `"existing_book":true`)
}

func TestHandler_CSVMissingFile(t *testing.T) {
	request := asOwner(httptest.NewRequest(http.MethodPost, "/import/csv", strings.NewReader("")))
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"file"`)
}
