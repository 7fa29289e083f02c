// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package config

import (
	"errors"
	"time"
)

// ErrMissingCredential is returned when the MotherDuck catalog is selected but
// no token is configured and no secrets store entry is named.
var ErrMissingCredential = errors.New("MotherDuck token not found: set MOTHERDUCK_TOKEN in the environment or a .env file, or set MOTHERDUCK_SECRET_NAME")

// Database sources.
const (
	SourceMotherDuck = "motherduck"
	SourceLocal      = "local"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file, a local .env file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults matching the reference deployment
//  2. Config File: Optional YAML config file (config.yaml)
//  3. .env: Loaded into the process environment without overriding set variables
//  4. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database    DatabaseConfig    `koanf:"database"`
	Tables      TablesConfig      `koanf:"tables"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Dashboard   DashboardConfig   `koanf:"dashboard"`
	Breaker     BreakerConfig     `koanf:"breaker"`
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DatabaseConfig describes the analytical engine and the catalog attached to it.
//
// With Source "motherduck" the catalog md:<Catalog> is attached under Alias.
// With Source "local" the DuckDB file at LocalPath (or ":memory:") is attached
// under Alias instead, so the same qualified queries run offline.
type DatabaseConfig struct {
	Source           string        `koanf:"source"`
	Catalog          string        `koanf:"catalog"`
	Alias            string        `koanf:"alias"`
	Schema           string        `koanf:"schema"`
	LocalPath        string        `koanf:"local_path"`
	ReadOnly         bool          `koanf:"read_only"` // Attach LocalPath read-only
	MaxMemory        string        `koanf:"max_memory"`
	Threads          int           `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
	ExtensionTimeout time.Duration `koanf:"extension_timeout"`
}

// IsMotherDuck reports whether the remote MotherDuck catalog is used.
func (d DatabaseConfig) IsMotherDuck() bool {
	return d.Source == SourceMotherDuck
}

// TablesConfig names every source table inside Alias.Schema.
// Names are quoted when used, so legacy names with spaces are allowed.
type TablesConfig struct {
	NYCTaxi2019        string `koanf:"nyc_taxi_2019"`
	NYCTaxi2023        string `koanf:"nyc_taxi_2023"`
	ChicagoTaxi2019    string `koanf:"chicago_taxi_2019"`
	ChicagoTaxi2023    string `koanf:"chicago_taxi_2023"`
	ChicagoTraffic2019 string `koanf:"chicago_traffic_2019"`
	ChicagoTraffic2023 string `koanf:"chicago_traffic_2023"`
	CTAStationEntries  string `koanf:"cta_station_entries"`
	NYCZoneLookup      string `koanf:"nyc_zone_lookup"`
}

// CredentialsConfig locates the MotherDuck token.
// MotherDuckToken wins when set; otherwise SecretName is read from
// Google Secret Manager (projects/<p>/secrets/<s>/versions/<v>).
type CredentialsConfig struct {
	MotherDuckToken string        `koanf:"motherduck_token"`
	SecretName      string        `koanf:"secret_name"`
	CredentialsFile string        `koanf:"credentials_file"` // Optional service account JSON for Secret Manager
	Timeout         time.Duration `koanf:"timeout"`
}

// DashboardConfig holds control defaults and query bounds for the dashboard.
type DashboardConfig struct {
	DefaultYears       []int  `koanf:"default_years"`
	DefaultCity        string `koanf:"default_city"`
	DefaultGranularity string `koanf:"default_granularity"`
	TopNMin            int    `koanf:"top_n_min"`
	TopNMax            int    `koanf:"top_n_max"`
	TopNDefault        int    `koanf:"top_n_default"`
	HotspotLimit       int    `koanf:"hotspot_limit"`
	PointMapLimit      int    `koanf:"point_map_limit"`
	ScatterSampleSize  int    `koanf:"scatter_sample_size"`
	MaxFare            int    `koanf:"max_fare"` // Exclusive upper bound for sampled fares
}

// BreakerConfig controls the optional circuit breaker around catalog queries.
// It never retries; an open breaker fails panels immediately.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from all layers and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
