// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/metrics"
)

// GuardOptions tunes the rate limit and circuit breaker around a provider.
type GuardOptions struct {
	RPS              float64
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HalfOpenRequests uint32
}

// DefaultGuardOptions opens the breaker after five straight failures and
// probes again after a minute.
func DefaultGuardOptions(rps float64) GuardOptions {
	return GuardOptions{
		RPS:              rps,
		Burst:            1,
		FailureThreshold: 5,
		OpenTimeout:      time.Minute,
		HalfOpenRequests: 1,
	}
}

// guarded is a Provider behind a limiter and a circuit breaker.
type guarded struct {
	provider Provider
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]Result]
	logger   *slog.Logger
}

// Guard wraps provider so calls are paced at options.RPS and fail fast
// with 503 while the provider is considered down.
func Guard(provider Provider, options GuardOptions, logger *slog.Logger) Provider {
	name := provider.Name()
	metrics.ProviderBreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]Result](gobreaker.Settings{
		Name:        name,
		MaxRequests: options.HalfOpenRequests,
		Timeout:     options.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= options.FailureThreshold
		},
		// A caller giving up is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.ProviderBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			logger.Warn("provider_breaker_state_changed",
				slog.String("provider", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &guarded{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(options.RPS), max(options.Burst, 1)),
		breaker:  breaker,
		logger:   logger,
	}
}

func (guard *guarded) Name() string { return guard.provider.Name() }

func (guard *guarded) Search(context context.Context, query string, count int) ([]Result, error) {
	name := guard.provider.Name()

	results, err := guard.breaker.Execute(func() ([]Result, error) {
		if err := guard.limiter.Wait(context); err != nil {
			return nil, err
		}
		return guard.provider.Search(context, query, count)
	})

	switch {
	case err == nil:
		metrics.ProviderRequestsTotal.WithLabelValues(name, "ok").Inc()
		return results, nil

	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ProviderRequestsTotal.WithLabelValues(name, "rejected").Inc()
		return nil, apperr.ServiceUnavailable("Metadata provider " + name + " is temporarily unavailable")

	default:
		metrics.ProviderRequestsTotal.WithLabelValues(name, "error").Inc()
		guard.logger.Warn("provider_request_failed",
			slog.String("provider", name),
			slog.Any("error", err),
		)
		return nil, apperr.BadGateway("Metadata provider "+name+" failed", err)
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
