// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package api

import (
	"context"
	"time"

	"github.com/tomtom215/commutepulse/internal/dashboard"
	"github.com/tomtom215/commutepulse/internal/validation"
)

// HealthChecker is the part of the database the health endpoints need.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Source() string
}

// PageRenderer turns a built dashboard page into HTML.
// *dashboard.TemplateEngine implements it.
type PageRenderer interface {
	Execute(page *dashboard.Page) ([]byte, error)
}

// Handler serves the dashboard and operational endpoints.
type Handler struct {
	dashboard *dashboard.Service
	engine    PageRenderer
	db        HealthChecker
	defaults  validation.DashboardDefaults
	version   string
	startTime time.Time

	readyTimeout time.Duration
}

// HandlerOptions wires a Handler.
type HandlerOptions struct {
	Dashboard *dashboard.Service
	Engine    PageRenderer
	DB        HealthChecker
	Defaults  validation.DashboardDefaults
	Version   string

	// ReadyTimeout bounds the readiness ping. Zero means 5s.
	ReadyTimeout time.Duration
}

// NewHandler creates a Handler.
func NewHandler(opts HandlerOptions) *Handler {
	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = 5 * time.Second
	}
	return &Handler{
		dashboard:    opts.Dashboard,
		engine:       opts.Engine,
		db:           opts.DB,
		defaults:     opts.Defaults,
		version:      opts.Version,
		startTime:    time.Now(),
		readyTimeout: readyTimeout,
	}
}
