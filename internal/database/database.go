// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
)

// Options configures a DB.
type Options struct {
	Database config.DatabaseConfig
	Tables   config.TablesConfig
	Breaker  config.BreakerConfig

	// Token is the MotherDuck access token. Ignored for the local source.
	Token string
}

// DB wraps the DuckDB connection pool and provides the dashboard queries.
// Every connection in the pool runs the same init statements, so the
// catalog is attached under the configured alias on all of them.
type DB struct {
	conn    *sql.DB
	cfg     config.DatabaseConfig
	tables  config.TablesConfig
	token   string
	breaker *queryBreaker // nil when the breaker is disabled
}

// New opens DuckDB, loads the required extensions, and attaches the catalog.
// The first connection is established eagerly so an invalid token or an
// unreachable catalog fails here rather than on the first panel query.
func New(opts Options) (*DB, error) {
	if opts.Database.IsMotherDuck() && strings.TrimSpace(opts.Token) == "" {
		return nil, config.ErrMissingCredential
	}

	db := &DB{
		cfg:    opts.Database,
		tables: opts.Tables,
		token:  opts.Token,
	}
	if opts.Breaker.Enabled {
		db.breaker = newQueryBreaker("duckdb-catalog", opts.Breaker)
	}

	connector, err := duckdb.NewConnector(db.dsn(), db.initConnection)
	if err != nil {
		return nil, db.redact(fmt.Errorf("failed to create connector: %w", err))
	}
	db.conn = sql.OpenDB(connector)
	db.configureConnectionPool()

	start := time.Now()
	ctx, cancel := extensionContext(db.cfg.ExtensionTimeout)
	defer cancel()
	err = db.conn.PingContext(ctx)
	metrics.RecordCatalogAttach(db.cfg.Source, time.Since(start), err)
	if err != nil {
		closeQuietly(db.conn) // also closes the connector
		return nil, db.redact(fmt.Errorf("failed to attach %s: %w", db.catalogLabel(), err))
	}

	logging.Info().
		Str("source", db.cfg.Source).
		Str("catalog", db.catalogLabel()).
		Str("alias", db.cfg.Alias).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog attached")

	return db, nil
}

// dsn builds the connection string for the scratch in-memory database that
// hosts the attached catalog.
func (db *DB) dsn() string {
	threads := db.cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	dsn := fmt.Sprintf(":memory:?threads=%d", threads)
	if db.cfg.MaxMemory != "" {
		dsn += "&max_memory=" + db.cfg.MaxMemory
	}
	return dsn
}

// catalogLabel names the attached catalog in logs and errors.
func (db *DB) catalogLabel() string {
	if db.cfg.IsMotherDuck() {
		return "md:" + db.cfg.Catalog
	}
	return db.cfg.LocalPath
}

// Source reports the configured catalog source ("motherduck" or "local").
func (db *DB) Source() string {
	return db.cfg.Source
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping checks that the engine answers and the catalog alias is attached.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return db.redact(fmt.Errorf("ping: %w", err))
	}

	var attached int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM duckdb_databases() WHERE database_name = ?", db.cfg.Alias).Scan(&attached)
	if err != nil {
		return db.redact(fmt.Errorf("check catalog: %w", err))
	}
	if attached == 0 {
		return fmt.Errorf("catalog alias %s is not attached", db.cfg.Alias)
	}
	return nil
}

// table returns the fully qualified, quoted name of a source table.
func (db *DB) table(name string) string {
	return db.cfg.Alias + "." + db.cfg.Schema + "." + quoteIdent(name)
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes a SQL string literal, doubling embedded quotes.
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
