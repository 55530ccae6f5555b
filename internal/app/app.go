// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app builds the domain services on top of the shared infrastructure.

Both the API server and libractl start from [Build] so every entry point
runs the same wiring:

	pool, redis ─► repositories ─► services
*/
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/libra/internal/core/author"
	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/collection"
	"github.com/taibuivan/libra/internal/core/corpus"
	"github.com/taibuivan/libra/internal/core/cover"
	"github.com/taibuivan/libra/internal/core/files"
	"github.com/taibuivan/libra/internal/core/genre"
	"github.com/taibuivan/libra/internal/core/importer"
	"github.com/taibuivan/libra/internal/core/language"
	"github.com/taibuivan/libra/internal/core/metadata"
	"github.com/taibuivan/libra/internal/core/recommend"
	"github.com/taibuivan/libra/internal/core/tag"
	"github.com/taibuivan/libra/internal/platform/config"
	"github.com/taibuivan/libra/internal/platform/constants"
	pgstore "github.com/taibuivan/libra/internal/platform/postgres"
	redisstore "github.com/taibuivan/libra/internal/platform/redis"
	"github.com/taibuivan/libra/internal/platform/storage"
)

// App holds the infrastructure clients and every domain service.
type App struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client

	Authors     *author.Service
	Books       *book.Service
	Genres      *genre.Service
	Languages   *language.Service
	Tags        *tag.Service
	Corpus      *corpus.Service
	Recommend   *recommend.Service
	Importer    *importer.Service
	Collections *collection.Service
	Metadata    *metadata.Service
	Covers      *cover.Service
	Files       *files.Service

	logger *slog.Logger
}

// Build connects to Postgres and Redis and constructs the services.
// The caller owns the result and must call [App.Close].
func Build(context context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	client, err := redisstore.NewClient(context, cfg.RedisURL, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	coverDir, err := storage.NewDir(cfg.CoverDir)
	if err != nil {
		pool.Close()
		_ = client.Close()
		return nil, fmt.Errorf("open cover directory: %w", err)
	}
	fileDir, err := storage.NewDir(cfg.FileDir)
	if err != nil {
		pool.Close()
		_ = client.Close()
		return nil, fmt.Errorf("open file directory: %w", err)
	}

	application := &App{Pool: pool, Redis: client, logger: logger}

	// # Library
	application.Authors = author.NewService(author.NewPostgresRepository(pool), logger)
	application.Books = book.NewService(book.NewPostgresRepository(pool), application.Authors, logger).
		WithAttachments(coverDir, fileDir)
	application.Genres = genre.NewService(genre.NewPostgresRepository(pool), logger)
	application.Languages = language.NewService(language.NewPostgresRepository(pool), logger)
	application.Tags = tag.NewService(tag.NewPostgresRepository(pool), logger)
	application.Collections = collection.NewService(collection.NewPostgresRepository(pool), application.Books, logger)

	// # Recommendations
	application.Corpus = corpus.NewService(corpus.NewPostgresRepository(pool), application.Authors, application.Genres, logger)
	cache := redisstore.NewJSONCache(client, constants.RedisPrefixRecommend, cfg.RecommendCacheTTL)
	application.Recommend = recommend.NewService(application.Books, application.Genres, application.Corpus, cache, logger)
	application.Importer = importer.NewService(application.Books, application.Corpus, application.Recommend, logger)

	// # Covers and files
	providerClient := &http.Client{Timeout: cfg.ProviderTimeout}
	application.Covers = cover.NewService(cover.NewPostgresRepository(pool), application.Books, coverDir, providerClient, logger)
	application.Files = files.NewService(files.NewPostgresRepository(pool), application.Books, fileDir, logger)

	// # Metadata
	application.Metadata = metadata.NewService(Providers(cfg, providerClient, logger), application.Books, application.Covers, logger)

	return application, nil
}

// Providers returns the metadata providers, each behind a rate limiter and
// a circuit breaker.
func Providers(cfg *config.Config, client *http.Client, logger *slog.Logger) []metadata.Provider {
	options := metadata.DefaultGuardOptions(cfg.ProviderRPS)
	raw := []metadata.Provider{
		metadata.NewGoogleBooks(client, cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey),
		metadata.NewOpenLibrary(client, cfg.OpenLibraryBaseURL),
		metadata.NewAmazon(client, cfg.AmazonBaseURL),
		metadata.NewGoodreads(client, cfg.GoodreadsBaseURL),
	}

	guarded := make([]metadata.Provider, 0, len(raw))
	for _, provider := range raw {
		guarded = append(guarded, metadata.Guard(provider, options, logger))
	}
	return guarded
}

// Close releases the database pool and the Redis client.
func (application *App) Close() {
	application.logger.Info("closing_postgres_pool")
	application.Pool.Close()

	application.logger.Info("closing_redis_client")
	if err := application.Redis.Close(); err != nil {
		application.logger.Error("redis_close_failed", slog.Any("error", err))
	}
}
