// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package corpus

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/libra/internal/platform/validate"
)

type Service struct {
	repo    Repository
	authors AuthorResolver
	genres  GenreResolver
	logger  *slog.Logger
}

func NewService(repo Repository, authors AuthorResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		authors: authors,
		genres:  genres,
		logger:  logger,
	}
}

// Add resolves the author and the genre ids of entry and stores it.
func (service *Service) Add(context context.Context, entry Entry) (*OtherBook, error) {
	entry.Title = strings.TrimSpace(entry.Title)
	entry.AuthorName = strings.TrimSpace(entry.AuthorName)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entry.Title).Required(FieldAuthor, entry.AuthorName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	authorID, err := service.authors.ResolveID(context, entry.AuthorName)
	if err != nil {
		return nil, err
	}

	genreIDs := []int{}
	if entry.Genre != nil {
		if genreIDs, err = service.genres.ResolveText(context, *entry.Genre); err != nil {
			return nil, err
		}
	}

	book := &OtherBook{
		Title:         entry.Title,
		AuthorID:      authorID,
		AuthorName:    entry.AuthorName,
		YearPublished: entry.YearPublished,
		ISBN:          entry.ISBN,
		Rating:        entry.Rating,
		Genre:         entry.Genre,
		GenreIDs:      genreIDs,
		Language:      entry.Language,
		Synopsis:      entry.Synopsis,
	}

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Debug("otherbook_created", slog.Int("otherbook_id", book.ID), slog.Int("genres", len(genreIDs)))
	return book, nil
}

// Candidates returns the recommendation pool for a book by authorID.
func (service *Service) Candidates(context context.Context, authorID int) ([]*OtherBook, error) {
	return service.repo.ListCandidates(context, authorID)
}

// Count returns the corpus size.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}
