// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api build net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/libra/internal/platform/config"
	"github.com/taibuivan/libra/internal/platform/constants"
	"github.com/taibuivan/libra/internal/platform/metrics"
	"github.com/taibuivan/libra/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// Handlers groups the domain handler sets mounted under /api/v1.
type Handlers struct {
	Health HealthDependencies

	Book       RouteRegistrar
	Author     RouteRegistrar
	Genre      RouteRegistrar
	Language   RouteRegistrar
	Tag        RouteRegistrar
	Recommend  RouteRegistrar
	Importer   RouteRegistrar
	Collection RouteRegistrar
	Metadata   RouteRegistrar
	Cover      RouteRegistrar
	Files      RouteRegistrar
	Owner      RouteRegistrar
}

func (handlers Handlers) registrars() []RouteRegistrar {
	return []RouteRegistrar{
		handlers.Owner,
		handlers.Book,
		handlers.Author,
		handlers.Genre,
		handlers.Language,
		handlers.Tag,
		handlers.Collection,
		handlers.Recommend,
		handlers.Importer,
		handlers.Metadata,
		handlers.Cover,
		handlers.Files,
	}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. Nil handlers are skipped.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(constants.DefaultRateLimitRequests, constants.RateLimitWindow))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	health := &healthHandler{dependencies: h.Health, logger: log}
	r.Get("/health", health.liveness)
	r.Get("/ready", health.readiness)
	r.Get("/ping", health.ping)
	r.Handle("/metrics", promhttp.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		for _, registrar := range h.registrars() {
			if registrar != nil {
				registrar.RegisterRoutes(api)
			}
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server and blocks until it is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until context expires.
func (s *Server) Shutdown(context context.Context) error {
	s.log.Info("server_stopping")
	return s.httpServer.Shutdown(context)
}
