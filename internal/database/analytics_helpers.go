// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/commutepulse/internal/metrics"
)

// queryAndScan executes a query and scans all rows using the provided scanner
// function. Each call is timed under operation, runs through the circuit
// breaker when enabled, and has the token redacted from any error.
//
// Engine errors are returned with their original text so panels can show it.
func (db *DB) queryAndScan(ctx context.Context, operation, query string, args []interface{}, scanner func(*sql.Rows) error) error {
	start := time.Now()
	err := db.guard(func() error {
		rows, err := db.conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			if err := scanner(rows); err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}
		return nil
	})
	metrics.RecordDBQuery(operation, time.Since(start), err)
	return db.redact(err)
}

// queryRowWithContext executes a query expecting a single row and scans into dest.
// No row leaves dest untouched.
func (db *DB) queryRowWithContext(ctx context.Context, operation, query string, args []interface{}, dest ...interface{}) error {
	start := time.Now()
	err := db.guard(func() error {
		err := db.conn.QueryRowContext(ctx, query, args...).Scan(dest...)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("scan row: %w", err)
		}
		return nil
	})
	metrics.RecordDBQuery(operation, time.Since(start), err)
	return db.redact(err)
}

// nullFloatPtr converts a nullable float to a pointer (nil for NULL).
func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
