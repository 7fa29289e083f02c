// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
)

// queryBreaker wraps catalog queries with a circuit breaker.
//
// Only connection-level failures count against the breaker; a malformed
// query fails its own panel without tripping it. The breaker never retries:
// while open, every query fails immediately with ErrBreakerOpen.
type queryBreaker struct {
	cb   *gobreaker.CircuitBreaker[struct{}]
	name string
}

func newQueryBreaker(name string, cfg config.BreakerConfig) *queryBreaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // Single probe in half-open state
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isConnectionError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &queryBreaker{cb: cb, name: name}
}

// execute runs fn through the breaker.
func (b *queryBreaker) execute(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})

	switch {
	case err == nil:
		metrics.RecordBreakerRequest(b.name, "success")
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(b.name, "rejected")
		return fmt.Errorf("%w (%v)", ErrBreakerOpen, err)
	default:
		metrics.RecordBreakerRequest(b.name, "failure")
		return err
	}
}

// guard runs fn through the breaker when one is configured.
func (db *DB) guard(fn func() error) error {
	if db.breaker == nil {
		return fn()
	}
	return db.breaker.execute(fn)
}
