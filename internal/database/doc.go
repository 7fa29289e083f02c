// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

// Package database provides the connection to the analytics catalog and the
// read-only queries behind every dashboard panel.
//
// # Overview
//
// The catalog lives in MotherDuck (md:taxi_assign) and is attached to a
// scratch in-memory DuckDB instance under a local alias (motherduck_db). All
// queries use fully qualified, quoted table names (alias.schema."table"), so
// the same SQL runs against a local DuckDB file or ":memory:" when the
// "local" source is configured. Tests rely on this.
//
// # Architecture
//
// Core:
//   - database.go: DB lifecycle (connector, eager attach, Ping, Close)
//   - extensions.go: Per-connection init (INSTALL/LOAD motherduck, SET token, ATTACH)
//   - provider.go: Process-wide memoized handle (sync.OnceValues)
//   - breaker.go: Optional circuit breaker (sony/gobreaker), never retries
//   - database_connection.go: Pool configuration and connection error detection
//   - filter.go: Year conditions and per-year table unions
//   - analytics_helpers.go: Query/scan helpers with metrics and token redaction
//
// Queries:
//   - analytics_kpi.go: Recovery KPIs, CTA total entries, traffic speed KPI
//   - analytics_temporal.go: Trip trends by granularity, hour-of-day, day-of-week
//   - analytics_traffic.go: Chicago traffic speed by hour
//   - analytics_ranking.go: CTA top-N stations with daily entries
//   - analytics_spatial.go: NYC pickup hotspots, Chicago pickup points
//   - analytics_breakdown.go: Payment type and vendor breakdowns
//   - analytics_scatter.go: Sampled distance vs fare scatter
//
// # Usage
//
//	provider := database.NewProvider(database.Options{
//	    Database: cfg.Database,
//	    Tables:   cfg.Tables,
//	    Breaker:  cfg.Breaker,
//	    Token:    token.Value,
//	})
//	db, err := provider.DB()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to connect to MotherDuck")
//	}
//	kpi, err := db.GetRecoveryKPI(ctx, models.CityNYC)
//
// # Edge Cases
//
//   - Recovery with zero 2019 trips is NULL in SQL and reported as undefined.
//   - An empty year selection returns an empty result without querying.
//   - Engine errors are returned with their original text (token redacted)
//     so the failing panel can display them.
//
// # Thread Safety
//
// DB is safe for concurrent use. The handle is built once and then only read.
package database
