// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Libra HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and Redis, build the domain services.
//  4. Run database migrations (idempotent).
//  5. Wire HTTP handlers.
//  6. Run the HTTP server and the cover worker under a supervisor tree
//     until SIGINT or SIGTERM.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/libra/internal/api"
	"github.com/taibuivan/libra/internal/app"
	"github.com/taibuivan/libra/internal/core/author"
	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/collection"
	"github.com/taibuivan/libra/internal/core/cover"
	"github.com/taibuivan/libra/internal/core/files"
	"github.com/taibuivan/libra/internal/core/genre"
	"github.com/taibuivan/libra/internal/core/importer"
	"github.com/taibuivan/libra/internal/core/language"
	"github.com/taibuivan/libra/internal/core/metadata"
	"github.com/taibuivan/libra/internal/core/owner"
	"github.com/taibuivan/libra/internal/core/recommend"
	"github.com/taibuivan/libra/internal/core/tag"
	"github.com/taibuivan/libra/internal/platform/config"
	"github.com/taibuivan/libra/internal/platform/constants"
	"github.com/taibuivan/libra/internal/platform/migration"
	pgstore "github.com/taibuivan/libra/internal/platform/postgres"
	redisstore "github.com/taibuivan/libra/internal/platform/redis"
	"github.com/taibuivan/libra/internal/platform/sec"
	"github.com/taibuivan/libra/internal/platform/supervisor"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Infrastructure and services ────────────────────────────────────
	application, err := app.Build(startupCtx, cfg, log)
	must(log, err, "build application")
	defer application.Close()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Owner authentication ───────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	if cfg.OwnerPasswordHash == "" {
		log.Warn("owner_login_disabled", slog.String("reason", "OWNER_PASSWORD_HASH is empty"))
	}
	owners := owner.NewService(owner.Credentials{
		Username:     cfg.OwnerUsername,
		PasswordHash: cfg.OwnerPasswordHash,
	}, tokens, constants.AccessTokenTTL, log)

	// ── 6. HTTP handlers ──────────────────────────────────────────────────
	handlers := api.Handlers{
		Health: api.HealthDependencies{
			CheckDatabase: func(context context.Context) error { return pgstore.Ping(context, application.Pool) },
			CheckCache:    func(context context.Context) error { return redisstore.Ping(context, application.Redis) },
		},
		Owner:      owner.NewHandler(owners),
		Book:       book.NewHandler(application.Books),
		Author:     author.NewHandler(application.Authors, application.Books),
		Genre:      genre.NewHandler(application.Genres),
		Language:   language.NewHandler(application.Languages),
		Tag:        tag.NewHandler(application.Tags),
		Collection: collection.NewHandler(application.Collections),
		Recommend:  recommend.NewHandler(application.Recommend),
		Importer:   importer.NewHandler(application.Importer),
		Metadata:   metadata.NewHandler(application.Metadata),
		Cover:      cover.NewHandler(application.Covers),
		Files:      files.NewHandler(application.Files),
	}
	server := api.NewServer(cfg, log, tokens, handlers)

	// ── 7. Supervised run ─────────────────────────────────────────────────
	tree := supervisor.NewTree(log, supervisor.TreeConfig{ShutdownTimeout: constants.ShutdownTimeout})
	tree.AddWorker(cover.NewWorker(application.Covers, cfg.CoverPollInterval, log))
	tree.AddAPI(supervisor.NewHTTPService(server, constants.ShutdownTimeout))

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := tree.Serve(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("supervisor_stopped", slog.Any("error", err))
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		log.Warn("services_not_stopped", slog.Int("count", len(unstopped)))
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "libra"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
