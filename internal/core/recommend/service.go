// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/corpus"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/metrics"
	"github.com/taibuivan/libra/internal/platform/redis"
	"github.com/taibuivan/libra/pkg/pointer"
	"github.com/taibuivan/libra/pkg/slice"
)

// Recommendation is one suggested corpus book.
type Recommendation struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Similarity float64 `json:"similarity"`
}

// BookReader loads the target book. Satisfied by [*book.Service].
type BookReader interface {
	Get(context context.Context, id int) (*book.Book, error)
}

// GenreResolver maps genre text to sorted ids. Satisfied by [*genre.Service].
type GenreResolver interface {
	ResolveText(context context.Context, text string) ([]int, error)
}

// CandidateSource lists corpus books not written by authorID.
// Satisfied by [*corpus.Service].
type CandidateSource interface {
	Candidates(context context.Context, authorID int) ([]*corpus.OtherBook, error)
}

// Cache stores ranked results. Satisfied by [*redis.JSONCache].
type Cache interface {
	Get(context context.Context, key string, target any) error
	Set(context context.Context, key string, value any) error
	DeletePrefix(context context.Context, pattern string) error
}

type Service struct {
	books  BookReader
	genres GenreResolver
	corpus CandidateSource
	cache  Cache
	logger *slog.Logger
}

// NewService wires the engine. cache may be nil.
func NewService(books BookReader, genres GenreResolver, corpus CandidateSource, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		genres: genres,
		corpus: corpus,
		cache:  cache,
		logger: logger,
	}
}

/*
Recommend returns up to topN corpus books most similar to bookID.

Description: An unknown book or one without genres yields an empty result,
not an error, and is never cached. Cached rankings are keyed by the target's
current author and genre ids, so an edited book misses its old entry. Cache
failures are logged and ignored.
*/
func (service *Service) Recommend(context context.Context, bookID, topN int) ([]Recommendation, error) {
	if topN <= 0 {
		return []Recommendation{}, nil
	}

	target, err := service.books.Get(context, bookID)
	if apperr.IsNotFound(err) {
		return []Recommendation{}, nil
	}
	if err != nil {
		return nil, err
	}

	targetGenres, err := service.genres.ResolveText(context, pointer.Val(target.Genre))
	if err != nil {
		return nil, err
	}
	if len(targetGenres) == 0 {
		return []Recommendation{}, nil
	}

	key := CacheKey(bookID, topN, target.AuthorID, targetGenres)
	if cached, ok := service.fromCache(context, key); ok {
		return cached, nil
	}

	start := time.Now()
	result, err := service.rank(context, target, targetGenres, topN)
	if err != nil {
		return nil, err
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	if service.cache != nil {
		if err := service.cache.Set(context, key, result); err != nil {
			service.logger.Warn("recommend_cache_set_failed", slog.Int("book_id", bookID), slog.Any("error", err))
		}
	}
	return result, nil
}

// CacheKey is "<book>:<topN>:<author>:<genre ids joined by '-'>".
func CacheKey(bookID, topN, authorID int, genreIDs []int) string {
	var key strings.Builder
	key.WriteString(strconv.Itoa(bookID) + ":" + strconv.Itoa(topN) + ":" + strconv.Itoa(authorID) + ":")
	for i, id := range genreIDs {
		if i > 0 {
			key.WriteByte('-')
		}
		key.WriteString(strconv.Itoa(id))
	}
	return key.String()
}

func (service *Service) rank(context context.Context, target *book.Book, targetGenres []int, topN int) ([]Recommendation, error) {
	pool, err := service.corpus.Candidates(context, target.AuthorID)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, other := range pool {
		if other.AuthorID == target.AuthorID {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:       other.ID,
			AuthorID: other.AuthorID,
			Title:    other.Title,
			Author:   other.AuthorName,
			GenreIDs: other.GenreIDs,
		})
	}

	ranked := Rank(targetGenres, candidates, topN)

	service.logger.Debug("recommendations_ranked",
		slog.Int("book_id", target.ID),
		slog.Int("candidates", len(candidates)),
		slog.Int("returned", len(ranked)),
	)

	return slice.Map(ranked, func(scored Scored) Recommendation {
		return Recommendation{
			ID:         scored.ID,
			Title:      scored.Title,
			Author:     scored.Author,
			Similarity: scored.Similarity,
		}
	}), nil
}

func (service *Service) fromCache(context context.Context, key string) ([]Recommendation, bool) {
	if service.cache == nil {
		return nil, false
	}

	var cached []Recommendation
	err := service.cache.Get(context, key, &cached)
	switch {
	case err == nil:
		metrics.RecommendCacheTotal.WithLabelValues("hit").Inc()
		return cached, true
	case errors.Is(err, redis.ErrCacheMiss):
		metrics.RecommendCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.RecommendCacheTotal.WithLabelValues("error").Inc()
		service.logger.Warn("recommend_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	}
	return nil, false
}

// Invalidate drops every cached ranking, e.g. after a corpus import.
func (service *Service) Invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.DeletePrefix(context, ""); err != nil {
		service.logger.Warn("recommend_cache_invalidate_failed", slog.Any("error", err))
	}
}
