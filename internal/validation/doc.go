// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

// Package validation validates dashboard control input using
// go-playground/validator v10.
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - A reference_year custom validator (2019 or 2023)
//   - Field errors reported under query parameter names (year, city, granularity, top_n)
//   - Configurable top-N bounds checked with ValidateVar
//
// Example usage:
//
//	filter, verr := validation.ParseDashboardQuery(r.URL.Query(), defaults)
//	if verr != nil {
//	    // 400 with verr.FieldMessages() rendered next to each control
//	}
package validation
