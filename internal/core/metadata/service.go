// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/extract"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/validate"
)

// BookReader loads the book being matched.
type BookReader interface {
	Get(context context.Context, id int) (*book.Book, error)
}

// CoverDeferrer records a remote cover for later download.
type CoverDeferrer interface {
	Defer(context context.Context, bookID int, url string) error
}

// Service dispatches searches to the configured providers.
type Service struct {
	providers map[string]Provider
	books     BookReader
	covers    CoverDeferrer
	logger    *slog.Logger
}

func NewService(providers []Provider, books BookReader, covers CoverDeferrer, logger *slog.Logger) *Service {
	byName := make(map[string]Provider, len(providers))
	for _, provider := range providers {
		byName[provider.Name()] = provider
	}
	return &Service{providers: byName, books: books, covers: covers, logger: logger}
}

// Providers lists the configured provider names, sorted.
func (service *Service) Providers() []string {
	names := make([]string, 0, len(service.providers))
	for name := range service.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search queries one provider. count is clamped to 1..MaxCount.
func (service *Service) Search(context context.Context, providerName, query string, count int) ([]Result, error) {
	query = strings.TrimSpace(query)

	provider, ok := service.providers[providerName]
	validator := &validate.Validator{}
	validator.Required(FieldQuery, query)
	validator.Custom(FieldProvider, !ok, "must be one of: "+strings.Join(service.Providers(), ", "))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	results, err := provider.Search(context, query, clampCount(count))
	if err != nil {
		return nil, err
	}

	service.logger.Debug("metadata_search",
		slog.String("provider", providerName),
		slog.String("query", query),
		slog.Int("results", len(results)),
	)
	return results, nil
}

/*
Match searches for an existing book by "author title".

Description: Results whose author differs from the book's (after name
capitalisation) are flagged with AuthorMismatch instead of being dropped, so
the owner can still pick them.
*/
func (service *Service) Match(context context.Context, bookID int, providerName string, count int) ([]Result, error) {
	target, err := service.books.Get(context, bookID)
	if err != nil {
		return nil, err
	}

	if providerName == "" {
		providerName = ProviderGoogle
	}
	if count <= 0 {
		count = MatchCount
	}

	results, err := service.Search(context, providerName, target.AuthorName+" "+target.Title, count)
	if err != nil {
		return nil, err
	}

	author := extract.CapitalizeName(target.AuthorName)
	for index := range results {
		results[index].AuthorMismatch = extract.CapitalizeName(results[index].AuthorName) != author
	}
	return results, nil
}

// RefreshCover takes the first match that has a cover and queues it for
// download. It returns the queued URL.
func (service *Service) RefreshCover(context context.Context, bookID int, providerName string) (string, error) {
	results, err := service.Match(context, bookID, providerName, MatchCount)
	if err != nil {
		return "", err
	}

	for _, result := range results {
		if result.CoverImage == nil || *result.CoverImage == "" {
			continue
		}
		if err := service.covers.Defer(context, bookID, *result.CoverImage); err != nil {
			return "", err
		}
		service.logger.Info("cover_refresh_queued",
			slog.Int("book_id", bookID),
			slog.String("provider", result.Provider),
		)
		return *result.CoverImage, nil
	}

	return "", apperr.NotFound("Cover")
}

func clampCount(count int) int {
	if count < 1 {
		return DefaultCount
	}
	if count > MaxCount {
		return MaxCount
	}
	return count
}
