package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

type options struct {
	readOnly bool
}

// Option configures Open.
type Option func(*options)

// ReadOnly rejects writes on the returned handle. query_only is a
// per-connection setting, so the pool is pinned to a single connection.
func ReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// Open creates a SQLite connection via libSQL: WAL journal mode, 5 s busy
// timeout. An in-memory database is pinned to one connection so every
// query sees the same data.
func Open(ctx context.Context, path string, opts ...Option) (*sql.DB, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" || o.readOnly {
		db.SetMaxOpenConns(1)
	}

	// libSQL rejects Exec for PRAGMAs that return rows, but some PRAGMAs
	// return nothing. Use QueryContext and drain rows to handle both.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	if o.readOnly {
		pragmas = append(pragmas, "PRAGMA query_only=ON")
	}
	for _, p := range pragmas {
		rows, err := db.QueryContext(ctx, p)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %s: %w", p, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
