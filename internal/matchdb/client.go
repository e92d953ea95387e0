// Package matchdb provides SQLite persistence for vendors, events, and
// cached ranking results.
package matchdb

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client wraps the database handle and the typed query layer.
type Client struct {
	DB      *sql.DB
	Queries *Queries
	config  Config
}

// NewClient opens (and if necessary creates) the database at
// config.DBPath, applies performance pragmas, and runs schema migrations.
func NewClient(config Config) (*Client, error) {
	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A :memory: database exists per-connection, so the pool must stay at a
	// single connection or queries will see empty databases.
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}

	if err := applyPerformancePragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if config.verbose {
		slog.Debug("matchdb client ready", slog.String("path", config.DBPath))
	}

	return &Client{
		DB:      db,
		Queries: New(db),
		config:  config,
	}, nil
}

func applyPerformancePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA cache_size = -64000", // 64MB
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS vendors (
    id TEXT PRIMARY KEY,
    business_name TEXT NOT NULL,
    categories TEXT NOT NULL DEFAULT '[]',
    lat REAL,
    lng REAL,
    event_preference TEXT NOT NULL DEFAULT '[]',
    max_vendor_fee REAL NOT NULL DEFAULT 0,
    demographic TEXT NOT NULL DEFAULT '[]',
    selected_past_popups TEXT NOT NULL DEFAULT '[]',
    preferred_size_min INTEGER NOT NULL DEFAULT 0,
    preferred_size_max INTEGER NOT NULL DEFAULT 0,
    preferred_days TEXT NOT NULL DEFAULT '[]',
    description TEXT NOT NULL DEFAULT '',
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    event_types TEXT NOT NULL DEFAULT '[]',
    vendor_fee REAL NOT NULL DEFAULT 0,
    demographics TEXT NOT NULL DEFAULT '[]',
    categories TEXT NOT NULL DEFAULT '[]',
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    raw_date TEXT NOT NULL DEFAULT '',
    start_date INTEGER,
    end_date INTEGER,
    headcount INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_start_date ON events(start_date);

CREATE TABLE IF NOT EXISTS rankings (
    vendor_id TEXT PRIMARY KEY REFERENCES vendors(id) ON DELETE CASCADE,
    payload TEXT NOT NULL,
    computed_at INTEGER NOT NULL
);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (c *Client) Close() error {
	return c.DB.Close()
}
