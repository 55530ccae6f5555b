// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/constants"
	"github.com/taibuivan/libra/internal/platform/middleware"
	requestutil "github.com/taibuivan/libra/internal/platform/request"
	"github.com/taibuivan/libra/internal/platform/respond"
	"github.com/taibuivan/libra/internal/platform/validate"
)

// MaxConfirmItems caps a single confirmation batch.
const MaxConfirmItems = 1000

// uploadField is the multipart field holding the export file.
const uploadField = "file"

// Handler implements the HTTP layer for imports.
type Handler struct {
	service *Service
}

// NewHandler constructs an import [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the import endpoints. All of them are owner-only and
// share a tighter per-IP rate limit.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireOwner)
		owner.Use(middleware.RateLimit(constants.ImportRateLimitRequests, constants.RateLimitWindow))

		owner.Post("/import/csv", handler.parseCSV)
		owner.Post("/import/notes", handler.parseNotes)
		owner.Post("/import/confirm", handler.confirm)
		owner.Post("/import/corpus", handler.importCorpus)
	})
}

// notesRequest is the body of POST /import/notes.
type notesRequest struct {
	Notes  string `json:"notes" validate:"required,max=1000000"`
	Format string `json:"format" validate:"omitempty,oneof=titleAuthor authorTitle"`
}

/*
POST /api/v1/import/csv.

Request (multipart):
  - file: CSV export (Goodreads, StoryGraph or Libra)

Response:
  - 200: ParseResult
*/
func (handler *Handler) parseCSV(writer http.ResponseWriter, request *http.Request) {
	file, err := openUpload(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	result, err := handler.service.ParseCSV(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
POST /api/v1/import/notes.

Request (Body):
  - notes: string (one book per line)
  - format: string (titleAuthor | authorTitle, default titleAuthor)

Response:
  - 200: ParseResult
*/
func (handler *Handler) parseNotes(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImportBytes)

	var input notesRequest
	if err := requestutil.DecodeStrictJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	format, err := ParseNotesFormat(input.Format)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ParseNotes(request.Context(), input.Notes, format)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
POST /api/v1/import/confirm.

Description: Body is the parsed items with an "action" (add | merge) on each.
Keys outside the candidate shape are rejected.

Response:
  - 200: []ItemResult (every item applied)
  - 207: []ItemResult (some items failed)
*/
func (handler *Handler) confirm(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImportBytes)

	var items []ConfirmItem
	if err := requestutil.DecodeStrictJSON(request, &items); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("items", len(items) == 0, "At least one item is required")
	validator.Custom("items", len(items) > MaxConfirmItems, "Too many items in one batch")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	results := handler.service.Confirm(request.Context(), items)
	for _, result := range results {
		if result.Failed() {
			respond.MultiStatus(writer, results)
			return
		}
	}
	respond.OK(writer, results)
}

/*
POST /api/v1/import/corpus.

Request (multipart):
  - file: CSV export of reference books

Response:
  - 200: Report
*/
func (handler *Handler) importCorpus(writer http.ResponseWriter, request *http.Request) {
	file, err := openUpload(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	report, err := handler.service.ImportCorpus(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

// openUpload returns the uploaded export, bounded by MaxImportBytes.
func openUpload(writer http.ResponseWriter, request *http.Request) (multipart.File, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImportBytes)

	file, _, err := request.FormFile(uploadField)
	if err != nil {
		if requestutil.IsBodyTooLarge(err) {
			return nil, apperr.ValidationError("Upload is too large")
		}
		return nil, apperr.ValidationError("A CSV file is required", apperr.FieldError{
			Field:   uploadField,
			Message: "This field is required",
		})
	}
	return file, nil
}
