// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
extensions.go - Extension Loading and Catalog Attachment

Every new pool connection runs initStatements through the connector init
hook. All statements are idempotent (INSTALL, LOAD, SET, ATTACH IF NOT
EXISTS), so running them per connection is safe and leaves a single attached
catalog in the shared DuckDB instance.
*/

package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"
)

const defaultExtensionTimeout = 30 * time.Second

// extensionContext returns a context with timeout for extension operations
func extensionContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultExtensionTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// extensionSpec defines a DuckDB extension required by a catalog source
type extensionSpec struct {
	// Name is the extension name (e.g., "motherduck")
	Name string
	// Community indicates if this is a community extension (requires "FROM community")
	Community bool
}

func (s extensionSpec) installSQL() string {
	if s.Community {
		return fmt.Sprintf("INSTALL %s FROM community", s.Name)
	}
	return "INSTALL " + s.Name
}

func (s extensionSpec) loadSQL() string {
	return "LOAD " + s.Name
}

var motherDuckExtension = extensionSpec{Name: "motherduck"}

// initStatement is one connection init step. Label is safe to log and to
// include in errors; SQL may carry the token.
type initStatement struct {
	Label string
	SQL   string
}

// initStatements returns the ordered statements that prepare a connection.
func (db *DB) initStatements() []initStatement {
	if db.cfg.IsMotherDuck() {
		ext := motherDuckExtension
		return []initStatement{
			{Label: "install " + ext.Name, SQL: ext.installSQL()},
			{Label: "load " + ext.Name, SQL: ext.loadSQL()},
			{Label: "set motherduck_token", SQL: "SET motherduck_token=" + quoteLiteral(db.token)},
			{
				Label: "attach md:" + db.cfg.Catalog,
				SQL:   fmt.Sprintf("ATTACH IF NOT EXISTS %s AS %s", quoteLiteral("md:"+db.cfg.Catalog), db.cfg.Alias),
			},
		}
	}

	attach := fmt.Sprintf("ATTACH IF NOT EXISTS %s AS %s", quoteLiteral(db.cfg.LocalPath), db.cfg.Alias)
	if db.cfg.ReadOnly && db.cfg.LocalPath != ":memory:" {
		attach += " (READ_ONLY)"
	}
	return []initStatement{{Label: "attach " + db.cfg.LocalPath, SQL: attach}}
}

// initConnection is the connector init hook. It runs once per new connection.
func (db *DB) initConnection(execer driver.ExecerContext) error {
	ctx, cancel := extensionContext(db.cfg.ExtensionTimeout)
	defer cancel()

	for _, stmt := range db.initStatements() {
		if _, err := execer.ExecContext(ctx, stmt.SQL, nil); err != nil {
			return db.redact(fmt.Errorf("%s: %w", stmt.Label, err))
		}
	}
	return nil
}
