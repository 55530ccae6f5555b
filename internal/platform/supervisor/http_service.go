// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer is the lifecycle subset of [*http.Server].
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(context context.Context) error
}

// HTTPService adapts a blocking ListenAndServe to suture's Serve(ctx).
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

func (service *HTTPService) Serve(ctx context.Context) error {
	failed := make(chan error, 1)
	go func() {
		if err := service.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The serve context is already cancelled.
		shutdownContext, cancel := context.WithTimeout(context.Background(), service.shutdownTimeout)
		defer cancel()

		if err := service.server.Shutdown(shutdownContext); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-failed
		return ctx.Err()
	}
}

func (service *HTTPService) String() string {
	return "http-server"
}
