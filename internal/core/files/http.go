// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package files

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/files/{bookID}/{name}", handler.download)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)
		owner.Post("/books/{id}/file", handler.upload)
	})
}

/*
POST /api/v1/books/{id}/file.

Request (multipart):
  - file: .pdf .epub .mobi .txt .azw3 .htm .html .pdb .djvu .fb2

Response:
  - 200: Attached
  - 400: missing file, unsupported type or too large
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxBookFileBytes)
	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		if requestutil.IsBodyTooLarge(err) {
			respond.Error(writer, request, validate.RequiredError(FieldFile, "file exceeds the upload limit"))
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "a book file is required"))
		return
	}
	defer file.Close()

	attached, err := handler.service.Attach(request.Context(), bookID, header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attached)
}

// GET /api/v1/files/{bookID}/{name}.
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	download, err := handler.service.Open(request.Context(), bookID, requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer download.File.Close()

	writer.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.Name}))
	http.ServeContent(writer, request, download.Name, download.Info.ModTime(), download.File)
}
