// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package logging

import "strings"

// MaskToken hides a credential, keeping only the first and last four characters.
// Example: "eyJhbGciOiJIUzI1NiIs...xo" -> "eyJh...-xo"
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactSecret removes every occurrence of secret from msg. Engine errors may
// echo the statement that failed, and the token is part of a SET statement.
func RedactSecret(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, MaskToken(secret))
}
