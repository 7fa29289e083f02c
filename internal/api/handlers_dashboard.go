// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/commutepulse/internal/dashboard"
	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
	"github.com/tomtom215/commutepulse/internal/validation"
)

// Dashboard renders the full dashboard for the filter in the query string.
//
// An invalid filter renders the controls with field messages and status 400
// without running any query. Panel failures are shown inside the page and
// do not change the status. The page is rendered in full before the status
// is written; a template failure answers 500 with the JSON error envelope.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	logger := logging.Ctx(ctx)

	filter, verr := validation.ParseDashboardQuery(r.URL.Query(), h.defaults)

	var page *dashboard.Page
	status := http.StatusOK
	if verr != nil {
		logger.Info().Err(verr).Msg("Rejected dashboard filter")
		page = h.dashboard.Invalid(filter, verr.FieldMessages())
		status = http.StatusBadRequest
	} else {
		page = h.dashboard.Build(ctx, filter)
	}

	if ctx.Err() != nil {
		logger.Debug().Err(ctx.Err()).Msg("Client went away before render")
		return
	}

	body, err := h.engine.Execute(page)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render dashboard")
		NewResponseWriter(w, r).InternalError("Failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debug().Err(err).Msg("Dashboard write interrupted")
		return
	}

	metrics.PageRenderDuration.Observe(time.Since(start).Seconds())
	logger.Debug().
		Ints("years", filter.Years).
		Str("city", string(filter.City)).
		Str("granularity", string(filter.Granularity)).
		Int("top_n", filter.TopN).
		Dur("duration", time.Since(start)).
		Msg("Dashboard rendered")
}
