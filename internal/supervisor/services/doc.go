// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

// Package services adapts the long-running parts of CommutePulse to
// suture.Service: the HTTP server and the catalog monitor.
package services
