// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Credentials.MotherDuckToken = "token"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with token", func(*Config) {}, ""},
		{"secret name instead of token", func(c *Config) {
			c.Credentials.MotherDuckToken = ""
			c.Credentials.SecretName = "projects/p/secrets/md/versions/latest"
		}, ""},
		{"local source needs no token", func(c *Config) {
			c.Credentials.MotherDuckToken = ""
			c.Database.Source = SourceLocal
			c.Database.LocalPath = ":memory:"
		}, ""},
		{"local source needs path", func(c *Config) {
			c.Database.Source = SourceLocal
		}, "DUCKDB_PATH"},
		{"unknown source", func(c *Config) { c.Database.Source = "postgres" }, "DATABASE_SOURCE"},
		{"alias with quote", func(c *Config) { c.Database.Alias = `md"x` }, "MOTHERDUCK_ALIAS"},
		{"empty table", func(c *Config) { c.Tables.NYCZoneLookup = "" }, "TABLE_NYC_ZONE_LOOKUP"},
		{"year outside reference set", func(c *Config) { c.Dashboard.DefaultYears = []int{2020} }, "DASHBOARD_DEFAULT_YEARS"},
		{"empty years allowed", func(c *Config) { c.Dashboard.DefaultYears = nil }, ""},
		{"bad city", func(c *Config) { c.Dashboard.DefaultCity = "Boston" }, "DASHBOARD_DEFAULT_CITY"},
		{"bad granularity", func(c *Config) { c.Dashboard.DefaultGranularity = "Yearly" }, "DASHBOARD_DEFAULT_GRANULARITY"},
		{"top-N default out of range", func(c *Config) { c.Dashboard.TopNDefault = 25 }, "DASHBOARD_TOP_N_DEFAULT"},
		{"zero sample size", func(c *Config) { c.Dashboard.ScatterSampleSize = 0 }, "DASHBOARD_SCATTER_SAMPLE_SIZE"},
		{"breaker without threshold", func(c *Config) {
			c.Breaker.Enabled = true
			c.Breaker.FailureThreshold = 0
		}, "BREAKER_FAILURE_THRESHOLD"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitReqs = 1_000_000 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingCredentialIsSentinel(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Validate() = %v, want ErrMissingCredential", err)
	}
}
