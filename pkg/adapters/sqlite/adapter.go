// Package sqlite provides a SQLite database adapter for leapdiff.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapdiff/pkg/adapter"
	"github.com/leapstack-labs/leapdiff/pkg/dialect"

	_ "modernc.org/sqlite" // cgo-free sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQL dialect for this adapter.
func (a *Adapter) Dialect() *dialect.Dialect {
	d, _ := dialect.Get("sqlite")
	return d
}

// Connect establishes a connection to SQLite.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	return nil
}

// ListColumns returns the table's column names in schema order. SQLite has
// no information_schema, so this uses PRAGMA table_info.
func (a *Adapter) ListColumns(ctx context.Context, table string) ([]string, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	// PRAGMA table_info takes the bare table name; strip a schema prefix.
	name := table
	if parts := strings.SplitN(table, ".", 2); len(parts) == 2 {
		name = parts[1]
	}

	query := fmt.Sprintf("PRAGMA table_info(%s)", a.Dialect().QuoteIdentifier(name))
	rows, err := a.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, &adapter.SchemaError{Table: table, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var cid, notNull, pk int
		var colName, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, &adapter.SchemaError{Table: table, Err: err}
		}
		columns = append(columns, colName)
	}
	if err := rows.Err(); err != nil {
		return nil, &adapter.SchemaError{Table: table, Err: err}
	}

	// PRAGMA table_info returns an empty set for unknown tables.
	if len(columns) == 0 {
		return nil, &adapter.NotFoundError{Table: table}
	}
	return columns, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
