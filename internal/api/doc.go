// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package api provides the HTTP layer for CommutePulse.

Routes:

  - GET /: the server-rendered dashboard. Query parameters year (repeatable),
    city, granularity and top_n select what is shown.
  - GET /api/v1/health: liveness with version, uptime and catalog source.
  - GET /api/v1/health/ready: readiness; pings the catalog and returns 503
    when it is unreachable.
  - GET /metrics: Prometheus exposition.

Unknown routes and wrong methods answer with the JSON error envelope from
response.go. The dashboard itself always answers with HTML; an invalid filter
renders the controls and field messages with status 400.

Middleware order: request ID, real IP, panic recovery and CORS apply to all
routes. The dashboard adds per-IP rate limiting, request metrics, security
headers with a script-free CSP, and gzip compression.
*/
package api
