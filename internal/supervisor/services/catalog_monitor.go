// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
)

// Pinger is the part of the database the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
	Source() string
}

// CatalogMonitor pings the attached catalog on an interval and keeps the
// catalog gauge and uptime gauge current. A failed ping is logged on the
// transition only, so a long outage does not flood the log.
type CatalogMonitor struct {
	db          Pinger
	interval    time.Duration
	pingTimeout time.Duration

	healthy bool
}

// NewCatalogMonitor creates a monitor. A non-positive interval means one minute.
func NewCatalogMonitor(db Pinger, interval time.Duration) *CatalogMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CatalogMonitor{
		db:          db,
		interval:    interval,
		pingTimeout: 10 * time.Second,
		healthy:     true,
	}
}

// Serve implements suture.Service.
func (m *CatalogMonitor) Serve(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.RecordUptime(start)
			m.check(ctx)
		}
	}
}

func (m *CatalogMonitor) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	defer cancel()

	source := m.db.Source()
	err := m.db.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}

	gauge := metrics.CatalogAttached.WithLabelValues(source)
	if err != nil {
		gauge.Set(0)
		if m.healthy {
			logging.Warn().Err(err).Str("source", source).Msg("Catalog ping failed")
		}
		m.healthy = false
		return
	}

	gauge.Set(1)
	if !m.healthy {
		logging.Info().Str("source", source).Msg("Catalog reachable again")
	}
	m.healthy = true
}

// String names the service in supervisor events.
func (m *CatalogMonitor) String() string {
	return "catalog-monitor"
}
