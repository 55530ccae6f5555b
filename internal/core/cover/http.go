// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/constants"
	"github.com/taibuivan/libra/internal/platform/middleware"
	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
	"github.com/taibuivan/libra/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the cover endpoints.
//
//   - Serving (Public): cover images, one download pass.
//   - Upload (Owner): multipart cover upload.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/covers/{bookID}/{name}", handler.serve)
	router.Get("/downloader", handler.download)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)
		owner.Post("/books/{id}/cover", handler.upload)
	})
}

/*
GET /api/v1/downloader.

Runs one pending-cover pass. The background worker does the same on its own
schedule.

Response:
  - 200: Pass
  - 502: the remote cover could not be fetched (marker kept)
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	pass, err := handler.service.ProcessPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pass)
}

/*
POST /api/v1/books/{id}/cover.

Request (multipart):
  - file: image (JPEG, PNG, GIF or WebP)

Response:
  - 200: Stored
  - 422: not a supported image
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxCoverBytes)
	file, _, err := request.FormFile(FieldFile)
	if err != nil {
		if requestutil.IsBodyTooLarge(err) {
			respond.Error(writer, request, validate.RequiredError(FieldFile, "cover exceeds the upload limit"))
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "a cover image is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	stored, err := handler.service.Store(request.Context(), bookID, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stored)
}

// GET /api/v1/covers/{bookID}/{name}.
func (handler *Handler) serve(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, info, err := handler.service.Open(bookID, requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	writer.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(writer, request, info.Name(), info.ModTime(), file)
}
