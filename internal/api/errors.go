// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package api

import "errors"

var (
	// ErrCatalogUnavailable is reported by readiness when the catalog ping fails.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNoHealthChecker means the handler was built without a database.
	ErrNoHealthChecker = errors.New("no database configured")
)
