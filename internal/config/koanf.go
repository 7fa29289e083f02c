// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/commutepulse/config.yaml",
	"/etc/commutepulse/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultDotEnvPath is read when DOTENV_PATH is not set.
const defaultDotEnvPath = ".env"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Source:           SourceMotherDuck,
			Catalog:          "taxi_assign",
			Alias:            "motherduck_db",
			Schema:           "main",
			LocalPath:        "",
			ReadOnly:         true,
			MaxMemory:        "1GB",
			Threads:          0, // 0 = use runtime.NumCPU()
			ExtensionTimeout: 30 * time.Second,
		},
		Tables: TablesConfig{
			NYCTaxi2019:        "yellow_taxi_2019_1",
			NYCTaxi2023:        "yellow_taxi_2023",
			ChicagoTaxi2019:    "chicago_taxi_2019",
			ChicagoTaxi2023:    "chicago_taxi_2023",
			ChicagoTraffic2019: "chicago_traffic_2019",
			ChicagoTraffic2023: "chicago_traffic_2023",
			CTAStationEntries:  "CTA - L Stations Daily Entries",
			NYCZoneLookup:      "taxi_zone_lookup",
		},
		Credentials: CredentialsConfig{
			MotherDuckToken: "",
			SecretName:      "",
			CredentialsFile: "",
			Timeout:         15 * time.Second,
		},
		Dashboard: DashboardConfig{
			DefaultYears:       []int{2019, 2023},
			DefaultCity:        "Chicago",
			DefaultGranularity: "Monthly",
			TopNMin:            3,
			TopNMax:            20,
			TopNDefault:        8,
			HotspotLimit:       50,
			PointMapLimit:      5000,
			ScatterSampleSize:  2000,
			MaxFare:            100,
		},
		Breaker: BreakerConfig{
			Enabled:          false, // Opt-in; failures surface directly either way
			FailureThreshold: 5,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
		},
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting, including those loaded from .env
//
// Clear precedence: ENV > .env > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Merge .env into the process environment. Variables already set win.
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// Layer 4: Load environment variables (highest priority)
	// MOTHERDUCK_TOKEN -> credentials.motherduck_token
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotEnv loads the optional .env file. A missing file is not an error;
// a malformed one is.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = defaultDotEnvPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"dashboard.default_years",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices. An empty string
// becomes an empty slice so DASHBOARD_DEFAULT_YEARS= selects no years.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names to koanf config paths.
var envMappings = map[string]string{
	// Credentials
	"motherduck_token":        "credentials.motherduck_token",
	"motherduck_secret_name":  "credentials.secret_name",
	"secret_credentials_file": "credentials.credentials_file",
	"secret_timeout":          "credentials.timeout",

	// Database mappings
	"database_source":          "database.source",
	"motherduck_database":      "database.catalog",
	"motherduck_alias":         "database.alias",
	"duckdb_schema":            "database.schema",
	"duckdb_path":              "database.local_path",
	"duckdb_read_only":         "database.read_only",
	"duckdb_max_memory":        "database.max_memory",
	"duckdb_threads":           "database.threads",
	"duckdb_extension_timeout": "database.extension_timeout",

	// Table name mappings
	"table_nyc_taxi_2019":        "tables.nyc_taxi_2019",
	"table_nyc_taxi_2023":        "tables.nyc_taxi_2023",
	"table_chicago_taxi_2019":    "tables.chicago_taxi_2019",
	"table_chicago_taxi_2023":    "tables.chicago_taxi_2023",
	"table_chicago_traffic_2019": "tables.chicago_traffic_2019",
	"table_chicago_traffic_2023": "tables.chicago_traffic_2023",
	"table_cta_station_entries":  "tables.cta_station_entries",
	"table_nyc_zone_lookup":      "tables.nyc_zone_lookup",

	// Dashboard mappings
	"dashboard_default_years":       "dashboard.default_years",
	"dashboard_default_city":        "dashboard.default_city",
	"dashboard_default_granularity": "dashboard.default_granularity",
	"dashboard_top_n_default":       "dashboard.top_n_default",
	"dashboard_hotspot_limit":       "dashboard.hotspot_limit",
	"dashboard_point_map_limit":     "dashboard.point_map_limit",
	"dashboard_scatter_sample_size": "dashboard.scatter_sample_size",

	// Circuit breaker mappings
	"breaker_enabled":           "breaker.enabled",
	"breaker_failure_threshold": "breaker.failure_threshold",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",

	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - MOTHERDUCK_TOKEN -> credentials.motherduck_token
//   - MOTHERDUCK_DATABASE -> database.catalog
//   - DUCKDB_PATH -> database.local_path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
