// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

/*
Package testinfra starts throwaway Postgres and Redis containers for
integration tests. Run them with:

	go test -tags integration ./...

Tests are skipped when Docker is not reachable.
*/
package testinfra

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/libra/internal/platform/migration"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
	startTimeout  = 90 * time.Second
)

// SkipIfNoDocker skips t when the Docker daemon is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// Postgres starts a migrated database and returns its DSN. The container is
// terminated when t finishes.
func Postgres(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "libra",
				"POSTGRES_PASSWORD": "libra",
				"POSTGRES_DB":       "libra",
			},
			// Postgres restarts once after initdb, so the line appears twice.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { terminate(t, container) })

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://libra:libra@%s/libra?sslmode=disable", endpoint)
	require.NoError(t, migration.RunUp(dsn, MigrationPath(t), slog.New(slog.DiscardHandler)), "run migrations")
	return dsn
}

// Redis starts an empty Redis and returns its URL.
func Redis(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	require.NoError(t, err, "start redis container")
	t.Cleanup(func() { terminate(t, container) })

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)
	return "redis://" + endpoint + "/0"
}

// MigrationPath locates data/migrations from this source file.
func MigrationPath(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "locate testinfra source")
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "data", "migrations")
}

func terminate(t *testing.T, container testcontainers.Container) {
	if err := container.Terminate(context.Background()); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}
