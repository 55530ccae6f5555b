// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package supervisor runs the long-lived parts of the server under a suture
tree so a crashed worker is restarted with backoff instead of taking the
process down.

The tree has two layers:

	libra
	├── worker-layer   (cover downloader)
	└── api-layer      (HTTP server)
*/
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig tunes restart behaviour. Zero values take the defaults.
type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

type Tree struct {
	root    *suture.Supervisor
	workers *suture.Supervisor
	api     *suture.Supervisor
}

// NewTree builds the supervisor hierarchy. Events are logged through logger.
func NewTree(logger *slog.Logger, config TreeConfig) *Tree {
	defaults := DefaultTreeConfig()
	if config.FailureThreshold == 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = defaults.FailureDecay
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = defaults.FailureBackoff
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	rootSpec := childSpec
	rootSpec.EventHook = (&sutureslog.Handler{Logger: logger}).MustHook()

	tree := &Tree{
		root:    suture.New("libra", rootSpec),
		workers: suture.New("worker-layer", childSpec),
		api:     suture.New("api-layer", childSpec),
	}
	tree.root.Add(tree.workers)
	tree.root.Add(tree.api)
	return tree
}

// AddWorker supervises a background job.
func (tree *Tree) AddWorker(service suture.Service) suture.ServiceToken {
	return tree.workers.Add(service)
}

// AddAPI supervises a request-serving component.
func (tree *Tree) AddAPI(service suture.Service) suture.ServiceToken {
	return tree.api.Add(service)
}

// Serve blocks until context is cancelled and every child has stopped.
func (tree *Tree) Serve(context context.Context) error {
	return tree.root.Serve(context)
}

// UnstoppedServiceReport lists children that ignored the shutdown timeout.
func (tree *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return tree.root.UnstoppedServiceReport()
}
