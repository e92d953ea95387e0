package matchdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"popmatch.poplocal.org/internal/logging"
)

// TableCounts returns row counts per table, for startup logging and
// debugging.
func (c *Client) TableCounts() (map[string]int, error) {
	rows, err := c.DB.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows,
		slog.Default().With(slog.String("component", "matchdb")),
		"database_rows")

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}

	counts := make(map[string]int)

	for _, table := range tables {
		var query string

		// This prevents SQL injection by ensuring the query string is always a constant.
		switch table {
		case "vendors":
			query = "SELECT COUNT(*) FROM vendors"
		case "events":
			query = "SELECT COUNT(*) FROM events"
		case "rankings":
			query = "SELECT COUNT(*) FROM rankings"
		default:
			continue
		}

		var count int
		if err := c.DB.QueryRow(query).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}

	return counts, nil
}

// DumpVendor logs a full structural dump of a vendor row. Only active when
// the client was built with verbose logging.
func (c *Client) DumpVendor(ctx context.Context, id string) {
	if !c.config.verbose {
		return
	}
	vendor, err := c.Queries.GetVendor(ctx, id)
	if err != nil {
		slog.Debug("vendor dump failed", slog.String("id", id), slog.Any("error", err))
		return
	}
	slog.Debug("vendor dump", slog.String("dump", spew.Sdump(vendor)))
}

// DumpEvent logs a full structural dump of an event row. Only active when
// the client was built with verbose logging.
func (c *Client) DumpEvent(ctx context.Context, id string) {
	if !c.config.verbose {
		return
	}
	event, err := c.Queries.GetEvent(ctx, id)
	if err != nil {
		slog.Debug("event dump failed", slog.String("id", id), slog.Any("error", err))
		return
	}
	slog.Debug("event dump", slog.String("dump", spew.Sdump(event)))
}
