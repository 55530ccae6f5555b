// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/corpus"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/metrics"
)

// # Collaborators

// BookStore is the part of the book service the pipeline writes through.
type BookStore interface {
	FindDuplicate(context context.Context, title, authorName string) (*book.Book, error)
	Create(context context.Context, draft book.Draft) (*book.Book, error)
	Update(context context.Context, id int, patch book.Patch) (*book.Book, error)
}

// CorpusStore accepts reference books for the recommendation pool.
type CorpusStore interface {
	Add(context context.Context, entry corpus.Entry) (*corpus.OtherBook, error)
}

// CacheInvalidator drops cached recommendations after the corpus changes.
type CacheInvalidator interface {
	Invalidate(context context.Context)
}

// Service runs the parse and confirm phases.
type Service struct {
	books           BookStore
	corpus          CorpusStore
	recommendations CacheInvalidator
	logger          *slog.Logger
}

// NewService constructs an import [Service]. recommendations may be nil.
func NewService(books BookStore, corpus CorpusStore, recommendations CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		books:           books,
		corpus:          corpus,
		recommendations: recommendations,
		logger:          logger,
	}
}

// # Phase 1: Parse

// ParseCSV parses an export and flags candidates that already exist.
func (service *Service) ParseCSV(context context.Context, reader io.Reader) (*ParseResult, error) {
	items, report, err := ParseCSV(reader)
	if err != nil {
		return nil, err
	}
	return service.finishParse(context, items, report)
}

// ParseNotes parses free-text notes and flags candidates that already exist.
func (service *Service) ParseNotes(context context.Context, text string, format NotesFormat) (*ParseResult, error) {
	items, report := ParseNotes(text, format)
	return service.finishParse(context, items, report)
}

func (service *Service) finishParse(context context.Context, items []BookImport, report Report) (*ParseResult, error) {
	service.logSkips(report)
	metrics.RecordImportRows(report.Format, report.Parsed, report.Skipped)

	if err := service.markDuplicates(context, items); err != nil {
		return nil, err
	}

	service.logger.Info("import_parsed",
		slog.String("format", report.Format),
		slog.Int("parsed", report.Parsed),
		slog.Int("skipped", report.Skipped),
	)
	return &ParseResult{Items: items, Report: report}, nil
}

// markDuplicates looks each candidate up against the library as it stands now;
// there is no batch-wide snapshot.
func (service *Service) markDuplicates(context context.Context, items []BookImport) error {
	for index := range items {
		existing, err := service.books.FindDuplicate(context, items[index].Title, items[index].AuthorName)
		if err != nil {
			return err
		}
		if existing == nil {
			continue
		}

		id := existing.ID
		items[index].ExistingBook = true
		items[index].ExistingBookID = &id
	}
	return nil
}

func (service *Service) logSkips(report Report) {
	for _, skip := range report.Skips {
		service.logger.Warn("import_row_skipped",
			slog.String("format", report.Format),
			slog.Int("line", skip.Line),
			slog.String("reason", skip.Reason),
		)
	}
}

// # Phase 2: Confirm

/*
Confirm applies the owner's per-item choices.

Description: Items run in order and each one commits on its own, so a failure
is reported in that item's result and never undoes earlier items. "merge"
applies the candidate's fields as a sparse patch to ExistingBookID; anything
else is "add".
*/
func (service *Service) Confirm(context context.Context, items []ConfirmItem) []ItemResult {
	results := make([]ItemResult, 0, len(items))

	for index, item := range items {
		action := item.Action
		if action == "" {
			action = ActionAdd
		}

		result := ItemResult{Index: index, Action: action}
		bookID, err := service.apply(context, action, item.BookImport)
		if err != nil {
			result.Code, result.Error = service.describe(context, index, err)
			metrics.ImportConfirmTotal.WithLabelValues(string(action), "failed").Inc()
		} else {
			result.BookID = bookID
			metrics.ImportConfirmTotal.WithLabelValues(string(action), "ok").Inc()
		}
		results = append(results, result)
	}

	return results
}

func (service *Service) apply(context context.Context, action Action, candidate BookImport) (int, error) {
	switch action {
	case ActionAdd:
		created, err := service.books.Create(context, toDraft(candidate))
		if err != nil {
			return 0, err
		}
		return created.ID, nil

	case ActionMerge:
		if candidate.ExistingBookID == nil {
			return 0, apperr.ValidationError("Merge needs an existing book", apperr.FieldError{
				Field:   "existing_book_id",
				Message: "This field is required",
			})
		}
		updated, err := service.books.Update(context, *candidate.ExistingBookID, toPatch(candidate))
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	default:
		return 0, apperr.ValidationError(fmt.Sprintf("Unknown action %q", action), apperr.FieldError{
			Field:   "action",
			Message: "Must be one of: add, merge",
		})
	}
}

// describe turns an item failure into a code and client-safe message.
func (service *Service) describe(context context.Context, index int, err error) (string, string) {
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
		return appError.Code, appError.Message
	}

	service.logger.ErrorContext(context, "import_item_failed",
		slog.Int("index", index),
		slog.String("error", err.Error()),
	)
	return apperr.CodeInternal, "An unexpected error occurred"
}

func toDraft(candidate BookImport) book.Draft {
	draft := book.Draft{
		Title:         candidate.Title,
		AuthorName:    candidate.AuthorName,
		YearPublished: candidate.YearPublished,
		ISBN:          candidate.ISBN,
		Rating:        candidate.Rating,
		Status:        candidate.Status,
		Genre:         candidate.Genre,
		Language:      candidate.Language,
		Synopsis:      candidate.Synopsis,
		PageCount:     candidate.PageCount,
		Series:        candidate.Series,
		CoverURL:      candidate.CoverImage,
	}
	if candidate.BookType != nil {
		draft.BookType = *candidate.BookType
	}
	return draft
}

// toPatch carries only the fields the candidate actually has.
func toPatch(candidate BookImport) book.Patch {
	patch := book.Patch{
		YearPublished: candidate.YearPublished,
		ISBN:          candidate.ISBN,
		Rating:        candidate.Rating,
		BookType:      candidate.BookType,
		Status:        candidate.Status,
		Genre:         candidate.Genre,
		Language:      candidate.Language,
		Synopsis:      candidate.Synopsis,
		PageCount:     candidate.PageCount,
		Series:        candidate.Series,
	}
	if candidate.Title != "" {
		title := candidate.Title
		patch.Title = &title
	}
	if candidate.AuthorName != "" {
		author := candidate.AuthorName
		patch.AuthorName = &author
	}
	return patch
}

// # Corpus

/*
ImportCorpus loads a CSV export into the recommendation corpus.

Description: Rows are parsed exactly like a library import. Each row is added
on its own; rows the corpus rejects are counted as skipped. Cached
recommendations are dropped once anything was added.
*/
func (service *Service) ImportCorpus(context context.Context, reader io.Reader) (Report, error) {
	items, report, err := ParseCSV(reader)
	if err != nil {
		return report, err
	}
	report.Format = FormatCorpus

	var failure error
	for index, item := range items {
		_, err := service.corpus.Add(context, corpus.Entry{
			Title:         item.Title,
			AuthorName:    item.AuthorName,
			YearPublished: item.YearPublished,
			ISBN:          item.ISBN,
			Rating:        item.Rating,
			Genre:         item.Genre,
			Language:      item.Language,
			Synopsis:      item.Synopsis,
		})
		if err != nil {
			if apperr.As(err) == nil {
				failure = fmt.Errorf("corpus import: item %d: %w", index+1, err)
				break
			}
			report.skip(item.line, fmt.Sprintf("%q rejected: %s", item.Title, err.Error()))
			continue
		}
		report.Imported++
	}

	service.logSkips(report)
	metrics.RecordImportRows(report.Format, report.Parsed, report.Skipped)

	if report.Imported > 0 && service.recommendations != nil {
		service.recommendations.Invalidate(context)
	}
	if failure != nil {
		return report, failure
	}

	service.logger.Info("corpus_imported",
		slog.Int("parsed", report.Parsed),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}
