// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package metrics provides Prometheus metrics for the dashboard server.

Metrics are registered with the default registry through promauto and exposed
at /metrics in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, error_type (timeout, canceled, breaker_open, schema, syntax, connection, other)
  - duckdb_catalog_attach_duration_seconds: Extension load and ATTACH time (histogram)
  - duckdb_catalog_attached: 1 once the catalog is attached (gauge)

Dashboard Metrics:
  - dashboard_panel_renders_total: Panel outcomes (counter)
    Labels: panel, outcome (ok, empty, error)
  - dashboard_page_render_duration_seconds: Full page render time (histogram)

HTTP Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - api_rate_limit_hits_total

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("nyc_trend", time.Since(start), err)

Error labels are derived from the error class, never from the raw message, so
label cardinality stays bounded.
*/
package metrics
