// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supervisor_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/platform/supervisor"
)

type fakeServer struct {
	stop      chan struct{}
	listenErr error
	shutdowns atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{stop: make(chan struct{})}
}

func (server *fakeServer) ListenAndServe() error {
	if server.listenErr != nil {
		return server.listenErr
	}
	<-server.stop
	return http.ErrServerClosed
}

func (server *fakeServer) Shutdown(context.Context) error {
	server.shutdowns.Add(1)
	close(server.stop)
	return nil
}

func TestHTTPService_ShutsDownOnCancel(t *testing.T) {
	server := newFakeServer()
	service := supervisor.NewHTTPService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	assert.EqualValues(t, 1, server.shutdowns.Load())
	assert.Equal(t, "http-server", service.String())
}

func TestHTTPService_ListenFailure(t *testing.T) {
	server := newFakeServer()
	server.listenErr = errors.New("address already in use")

	err := supervisor.NewHTTPService(server, time.Second).Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}

type tickingWorker struct {
	runs atomic.Int32
}

func (worker *tickingWorker) Serve(ctx context.Context) error {
	worker.runs.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

/*
TestTree_RunsChildren starts a tree with one worker and one server and
checks both are running and both stop with the tree.
*/
func TestTree_RunsChildren(t *testing.T) {
	tree := supervisor.NewTree(slog.New(slog.DiscardHandler), supervisor.TreeConfig{ShutdownTimeout: time.Second})
	worker := &tickingWorker{}
	server := newFakeServer()
	tree.AddWorker(worker)
	tree.AddAPI(supervisor.NewHTTPService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Serve(ctx) }()

	require.Eventually(t, func() bool { return worker.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}
	assert.EqualValues(t, 1, server.shutdowns.Load())
}
