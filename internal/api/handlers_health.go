// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Source  string  `json:"source"`
	Uptime  float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the readiness payload.
type ReadinessStatus struct {
	Ready   bool   `json:"ready"`
	Source  string `json:"source,omitempty"`
	Catalog string `json:"catalog"`
	Error   string `json:"error,omitempty"`
}

// Health reports that the process is serving. It never touches the catalog.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	metrics.RecordUptime(h.startTime)

	source := ""
	if h.db != nil {
		source = h.db.Source()
	}

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Source:  source,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady pings the catalog and answers 503 when it is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.db == nil {
		rw.Status(http.StatusServiceUnavailable, ReadinessStatus{
			Catalog: "missing",
			Error:   ErrNoHealthChecker.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("source", h.db.Source()).Msg("Readiness check failed")
		rw.Status(http.StatusServiceUnavailable, ReadinessStatus{
			Source:  h.db.Source(),
			Catalog: "unreachable",
			Error:   ErrCatalogUnavailable.Error(),
		})
		return
	}

	rw.Success(ReadinessStatus{
		Ready:   true,
		Source:  h.db.Source(),
		Catalog: "attached",
	})
}

// NotFound answers unknown routes with the JSON envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NotFound("Resource not found")
}

// MethodNotAllowed answers wrong methods with the JSON envelope.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).MethodNotAllowed("Method not allowed")
}
