// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto a typed [Config].

It uses caarlos0/env so that missing required settings fail at startup rather
than on first use.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The CLI additionally loads a local .env file before calling [Load].
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Libra API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// RecommendCacheTTL bounds how long ranked results stay cached.
	RecommendCacheTTL time.Duration `env:"RECOMMEND_CACHE_TTL" envDefault:"10m"`

	// Owner login. The password is stored as a bcrypt hash.
	OwnerUsername     string `env:"OWNER_USERNAME"      envDefault:"owner"`
	OwnerPasswordHash string `env:"OWNER_PASSWORD_HASH"`
	JWTPrivKeyPath    string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath     string `env:"JWT_PUBLIC_KEY_PATH"`

	// Local storage roots
	CoverDir string `env:"COVER_DIR" envDefault:"./data/covers"`
	FileDir  string `env:"FILE_DIR"  envDefault:"./data/files"`

	// CoverPollInterval is how often the worker drains pending remote covers.
	CoverPollInterval time.Duration `env:"COVER_POLL_INTERVAL" envDefault:"1m"`

	// Metadata providers
	GoogleBooksAPIKey  string        `env:"GOOGLE_BOOKS_API_KEY"`
	GoogleBooksBaseURL string        `env:"GOOGLE_BOOKS_BASE_URL" envDefault:"https://www.googleapis.com/books/v1"`
	OpenLibraryBaseURL string        `env:"OPENLIBRARY_BASE_URL"  envDefault:"https://openlibrary.org"`
	AmazonBaseURL      string        `env:"AMAZON_BASE_URL"       envDefault:"https://www.amazon.com"`
	GoodreadsBaseURL   string        `env:"GOODREADS_BASE_URL"    envDefault:"https://www.goodreads.com"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT"      envDefault:"10s"`
	ProviderRPS        float64       `env:"PROVIDER_RPS"          envDefault:"1"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS origin list. Development allows any origin.
func (c *Config) AllowedOrigins() []string {
	if c.IsDevelopment() {
		return []string{"*"}
	}

	origins := []string{"https://*.libra.app"}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
