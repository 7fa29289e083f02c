// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package middleware provides HTTP middleware for the dashboard server.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and stored in the
    request context for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern; slow requests are logged
  - Compression: gzip (klauspost/compress) for the HTML page, inline SVG
    and JSON when the client accepts it

All three use the func(http.HandlerFunc) http.HandlerFunc shape; the api
package adapts them to chi with chiMiddleware.
*/
package middleware
