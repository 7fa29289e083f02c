// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tomtom215/commutepulse/internal/models"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateTables(); err != nil {
		return err
	}

	if err := c.validateCredentials(); err != nil {
		return err
	}

	if err := c.validateDashboard(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// identifierPattern matches a bare SQL identifier usable as a catalog alias or schema.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateDatabase validates the engine and catalog settings
func (c *Config) validateDatabase() error {
	switch c.Database.Source {
	case SourceMotherDuck:
		if c.Database.Catalog == "" {
			return fmt.Errorf("MOTHERDUCK_DATABASE is required when DATABASE_SOURCE=motherduck")
		}
	case SourceLocal:
		if c.Database.LocalPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATABASE_SOURCE=local")
		}
	default:
		return fmt.Errorf("DATABASE_SOURCE must be one of: motherduck, local")
	}

	if !identifierPattern.MatchString(c.Database.Alias) {
		return fmt.Errorf("MOTHERDUCK_ALIAS must be a plain identifier, got %q", c.Database.Alias)
	}
	if !identifierPattern.MatchString(c.Database.Schema) {
		return fmt.Errorf("DUCKDB_SCHEMA must be a plain identifier, got %q", c.Database.Schema)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Database.ExtensionTimeout <= 0 {
		return fmt.Errorf("DUCKDB_EXTENSION_TIMEOUT must be positive")
	}
	return nil
}

// validateTables ensures every source table has a name
func (c *Config) validateTables() error {
	tables := map[string]string{
		"TABLE_NYC_TAXI_2019":        c.Tables.NYCTaxi2019,
		"TABLE_NYC_TAXI_2023":        c.Tables.NYCTaxi2023,
		"TABLE_CHICAGO_TAXI_2019":    c.Tables.ChicagoTaxi2019,
		"TABLE_CHICAGO_TAXI_2023":    c.Tables.ChicagoTaxi2023,
		"TABLE_CHICAGO_TRAFFIC_2019": c.Tables.ChicagoTraffic2019,
		"TABLE_CHICAGO_TRAFFIC_2023": c.Tables.ChicagoTraffic2023,
		"TABLE_CTA_STATION_ENTRIES":  c.Tables.CTAStationEntries,
		"TABLE_NYC_ZONE_LOOKUP":      c.Tables.NYCZoneLookup,
	}
	for env, name := range tables {
		if name == "" {
			return fmt.Errorf("%s must not be empty", env)
		}
	}
	return nil
}

// validateCredentials requires a token source when the remote catalog is used.
// The token itself may still arrive later from the secrets store.
func (c *Config) validateCredentials() error {
	if !c.Database.IsMotherDuck() {
		return nil
	}
	if c.Credentials.MotherDuckToken == "" && c.Credentials.SecretName == "" {
		return ErrMissingCredential
	}
	if c.Credentials.SecretName != "" && c.Credentials.Timeout <= 0 {
		return fmt.Errorf("SECRET_TIMEOUT must be positive")
	}
	return nil
}

// validateDashboard validates control defaults and query bounds
func (c *Config) validateDashboard() error {
	d := c.Dashboard
	for _, year := range d.DefaultYears {
		if !models.IsReferenceYear(year) {
			return fmt.Errorf("DASHBOARD_DEFAULT_YEARS may only contain %v, got %d", models.ReferenceYears, year)
		}
	}

	if !isValidCity(d.DefaultCity) {
		return fmt.Errorf("DASHBOARD_DEFAULT_CITY must be one of: Chicago, NYC")
	}
	if _, err := models.Granularity(d.DefaultGranularity).TruncUnit(); err != nil {
		return fmt.Errorf("DASHBOARD_DEFAULT_GRANULARITY: %w", err)
	}

	if d.TopNMin < 1 || d.TopNMin > d.TopNMax {
		return fmt.Errorf("dashboard top-N bounds are invalid: min=%d max=%d", d.TopNMin, d.TopNMax)
	}
	if d.TopNDefault < d.TopNMin || d.TopNDefault > d.TopNMax {
		return fmt.Errorf("DASHBOARD_TOP_N_DEFAULT must be between %d and %d", d.TopNMin, d.TopNMax)
	}

	if d.HotspotLimit < 1 {
		return fmt.Errorf("DASHBOARD_HOTSPOT_LIMIT must be positive")
	}
	if d.PointMapLimit < 1 {
		return fmt.Errorf("DASHBOARD_POINT_MAP_LIMIT must be positive")
	}
	if d.ScatterSampleSize < 1 {
		return fmt.Errorf("DASHBOARD_SCATTER_SAMPLE_SIZE must be positive")
	}
	if d.MaxFare < 1 {
		return fmt.Errorf("dashboard max fare must be positive")
	}
	return nil
}

func isValidCity(city string) bool {
	for _, c := range models.Cities {
		if string(c) == city {
			return true
		}
	}
	return false
}

// validateBreaker validates circuit breaker settings (only if enabled)
func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
