// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package main is the entry point for the CommutePulse dashboard server.

CommutePulse compares Chicago and NYC taxi demand, Chicago traffic speed and
CTA rail entries between 2019 and 2023. All data lives in a MotherDuck catalog
(or a local DuckDB file) and is aggregated on every page request.

# Application Architecture

	RootSupervisor ("commutepulse")
	├── DataSupervisor ("data-layer")
	│   └── CatalogMonitor
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml, .env and environment
 2. Logging: zerolog with JSON or console output
 3. Credentials: MOTHERDUCK_TOKEN, or the secret named by
    MOTHERDUCK_SECRET_NAME in Google Secret Manager
 4. Database: DuckDB with the catalog attached under one alias
 5. Dashboard: query service and embedded templates
 6. Supervisor tree and HTTP server

A missing credential or an unreachable catalog at startup is fatal. After
startup, catalog failures only affect the panels whose queries fail.

# Example Usage

	export MOTHERDUCK_TOKEN=...
	./commutepulse

Offline against a local DuckDB file:

	export DATABASE_SOURCE=local
	export DUCKDB_PATH=./data/taxi_assign.duckdb
	./commutepulse

# Signal Handling

SIGINT and SIGTERM stop accepting connections, let in-flight renders finish
within the shutdown timeout, then close the database.
*/
package main
