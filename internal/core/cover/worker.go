// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"context"
	"log/slog"
	"time"
)

// Drainer works through the pending queue once. Satisfied by [*Service].
type Drainer interface {
	Drain(context context.Context) (int, error)
}

// Worker drains pending covers on a fixed interval. It implements
// suture.Service.
type Worker struct {
	drainer  Drainer
	interval time.Duration
	logger   *slog.Logger
}

func NewWorker(drainer Drainer, interval time.Duration, logger *slog.Logger) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{drainer: drainer, interval: interval, logger: logger}
}

// Serve ticks until context is canceled. Each tick drains the queue: a failed
// download goes to the back and the rest of the backlog is still tried.
func (worker *Worker) Serve(context context.Context) error {
	ticker := time.NewTicker(worker.interval)
	defer ticker.Stop()

	worker.logger.Info("cover_worker_started", slog.Duration("interval", worker.interval))

	for {
		select {
		case <-context.Done():
			return context.Err()
		case <-ticker.C:
			worker.tick(context)
		}
	}
}

func (worker *Worker) tick(context context.Context) {
	handled, err := worker.drainer.Drain(context)
	if err != nil && context.Err() == nil {
		worker.logger.Warn("cover_worker_drain_failed", slog.Int("handled", handled), slog.Any("error", err))
		return
	}
	if handled > 0 {
		worker.logger.Debug("cover_worker_drained", slog.Int("handled", handled))
	}
}

func (worker *Worker) String() string { return "cover-worker" }
