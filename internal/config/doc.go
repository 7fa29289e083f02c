// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package config provides centralized configuration management for CommutePulse.

Configuration is layered with Koanf v2: built-in defaults, an optional YAML
file, a local .env file (loaded with godotenv, never overriding variables that
are already set) and finally the process environment.

# Environment Variables

Credentials:
  - MOTHERDUCK_TOKEN: MotherDuck access token
  - MOTHERDUCK_SECRET_NAME: Secret Manager version holding the token, used when MOTHERDUCK_TOKEN is unset
  - SECRET_CREDENTIALS_FILE: Service account JSON for Secret Manager (optional)

Database:
  - DATABASE_SOURCE: motherduck (default) or local
  - MOTHERDUCK_DATABASE: Remote catalog name (default: taxi_assign)
  - MOTHERDUCK_ALIAS: Local alias of the attached catalog (default: motherduck_db)
  - DUCKDB_PATH: DuckDB file attached when DATABASE_SOURCE=local
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: Engine tuning

Tables:
  - TABLE_NYC_TAXI_2019, TABLE_NYC_TAXI_2023, TABLE_CHICAGO_TAXI_2019,
    TABLE_CHICAGO_TAXI_2023, TABLE_CHICAGO_TRAFFIC_2019,
    TABLE_CHICAGO_TRAFFIC_2023, TABLE_CTA_STATION_ENTRIES,
    TABLE_NYC_ZONE_LOOKUP

Dashboard:
  - DASHBOARD_DEFAULT_YEARS: Comma-separated subset of 2019,2023
  - DASHBOARD_TOP_N_DEFAULT: Default station count (3-20)
  - DASHBOARD_SCATTER_SAMPLE_SIZE: Sample bound for the fare scatter

Server, security and logging:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

A missing credential is reported by Validate as ErrMissingCredential so the
server can halt before any query runs.
*/
package config
