// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/commutepulse/internal/logging"
)

// ErrBreakerOpen is returned when the circuit breaker rejects a query.
var ErrBreakerOpen = errors.New("circuit breaker is open: catalog queries are paused")

// redactedError replaces the message of an engine error that may echo the
// token while keeping the original error reachable through errors.Is/As.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redact strips the token from err's message.
func (db *DB) redact(err error) error {
	if err == nil || db.token == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, db.token) {
		return err
	}
	return &redactedError{msg: logging.RedactSecret(msg, db.token), err: err}
}

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
