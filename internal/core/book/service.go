// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/validate"
)

// Field limits.
const (
	maxTitleLen  = 500
	maxAuthorLen = 300
	maxPageCount = 100000
	maxYear      = 3000
	maxRating    = 5
)

// Attachments holds files stored next to a book, such as covers.
type Attachments interface {
	RemoveBook(bookID int) error
}

// Service implements the book use cases on top of a [Repository].
type Service struct {
	repo        Repository
	authors     AuthorResolver
	attachments []Attachments
	logger      *slog.Logger
}

// NewService constructs a book [Service].
func NewService(repo Repository, authors AuthorResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		authors: authors,
		logger:  logger,
	}
}

// WithAttachments registers stores whose files are removed with a book.
func (service *Service) WithAttachments(stores ...Attachments) *Service {
	service.attachments = append(service.attachments, stores...)
	return service
}

// List returns a filtered page of books.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single book.
func (service *Service) Get(context context.Context, id int) (*Book, error) {
	return service.repo.FindByID(context, id)
}

/*
Create resolves the author by name and persists a new book.

Description: The author is created on first reference. The sortable title is
derived from the title, the format defaults to ebook, and a cover URL is only
recorded as a pending download.
*/
func (service *Service) Create(context context.Context, draft Draft) (*Book, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.AuthorName = strings.TrimSpace(draft.AuthorName)
	if draft.BookType == "" {
		draft.BookType = TypeEbook
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, draft.Title).MaxLen(FieldTitle, draft.Title, maxTitleLen)
	validator.Required(FieldAuthor, draft.AuthorName).MaxLen(FieldAuthor, draft.AuthorName, maxAuthorLen)
	validateOptional(validator, &draft.BookType, draft.Status, draft.Rating, draft.PageCount, draft.YearPublished)
	if draft.CoverURL != nil && *draft.CoverURL != "" {
		validator.URL(FieldCoverURL, *draft.CoverURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	authorID, err := service.authors.ResolveID(context, draft.AuthorName)
	if err != nil {
		return nil, err
	}

	book := &Book{
		Title:          draft.Title,
		SortableTitle:  SortableTitle(draft.Title),
		AuthorID:       authorID,
		AuthorName:     draft.AuthorName,
		YearPublished:  draft.YearPublished,
		ISBN:           draft.ISBN,
		Rating:         draft.Rating,
		BookType:       draft.BookType,
		Status:         draft.Status,
		Genre:          draft.Genre,
		Language:       draft.Language,
		Synopsis:       draft.Synopsis,
		Review:         draft.Review,
		PageCount:      draft.PageCount,
		Series:         draft.Series,
		Tags:           draft.Tags,
		Publisher:      draft.Publisher,
		Notes:          draft.Notes,
		RemoteImageURL: draft.CoverURL,
	}

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int("book_id", book.ID),
		slog.String("title", book.Title),
		slog.Int("author_id", authorID),
	)
	return book, nil
}

/*
Update applies a sparse patch to an existing book.

Description: Only non-nil fields are written. A changed title recomputes the
sortable title; a changed author name is resolved (or created) first.
*/
func (service *Service) Update(context context.Context, id int, patch Patch) (*Book, error) {
	if patch.IsEmpty() {
		return nil, apperr.ValidationError("No updatable fields supplied")
	}

	validator := &validate.Validator{}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
		validator.Required(FieldTitle, trimmed).MaxLen(FieldTitle, trimmed, maxTitleLen)
	}
	if patch.AuthorName != nil {
		trimmed := strings.TrimSpace(*patch.AuthorName)
		patch.AuthorName = &trimmed
		validator.Required(FieldAuthor, trimmed).MaxLen(FieldAuthor, trimmed, maxAuthorLen)
	}
	validateOptional(validator, patch.BookType, patch.Status, patch.Rating, patch.PageCount, patch.YearPublished)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var sortable *string
	if patch.Title != nil {
		value := SortableTitle(*patch.Title)
		sortable = &value
	}

	authorID := 0
	if patch.AuthorName != nil {
		resolved, err := service.authors.ResolveID(context, *patch.AuthorName)
		if err != nil {
			return nil, err
		}
		authorID = resolved
	}

	if err := service.repo.Update(context, id, patch, authorID, sortable); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.Int("book_id", id))
	return service.repo.FindByID(context, id)
}

// Delete removes a book from the library and then its stored files.
// A file cleanup failure is logged; the book stays deleted.
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	for _, store := range service.attachments {
		if err := store.RemoveBook(id); err != nil {
			service.logger.Error("book_files_cleanup_failed", slog.Int("book_id", id), slog.Any("error", err))
		}
	}

	service.logger.Warn("book_deleted", slog.Int("book_id", id))
	return nil
}

// Series lists the distinct series names in use.
func (service *Service) Series(context context.Context) ([]string, error) {
	series, err := service.repo.ListSeries(context)
	if err != nil {
		return nil, err
	}

	if series == nil {
		series = []string{}
	}
	return series, nil
}

// FindDuplicate returns the existing book with the same title and author
// (case-insensitive, exact), or nil when there is none.
func (service *Service) FindDuplicate(context context.Context, title, authorName string) (*Book, error) {
	title = strings.TrimSpace(title)
	authorName = strings.TrimSpace(authorName)
	if title == "" || authorName == "" {
		return nil, nil
	}

	book, err := service.repo.FindByTitleAndAuthor(context, title, authorName)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func validateOptional(validator *validate.Validator, bookType *Type, status *Status, rating *float64, pageCount, year *int) {
	if bookType != nil {
		validator.OneOf(FieldBookType, string(*bookType), string(TypeEbook), string(TypeAudiobook), string(TypePhysical))
	}
	if status != nil {
		validator.OneOf(FieldStatus, string(*status),
			string(StatusToRead),
			string(StatusCurrentlyReading),
			string(StatusRead),
			string(StatusWishlist),
		)
	}
	if rating != nil {
		validator.FloatRange(FieldRating, *rating, 0, maxRating)
	}
	if pageCount != nil {
		validator.Range(FieldPageCount, *pageCount, 0, maxPageCount)
	}
	if year != nil {
		validator.Range(FieldYearPublished, *year, 0, maxYear)
	}
}
