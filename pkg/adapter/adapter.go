// Package adapter provides the database adapter contract for leapdiff.
//
// Concrete adapter implementations live in pkg/adapters/ subdirectories and
// register themselves by init(). Every adapter satisfies diff.Connection, so
// the comparison core stays independent of driver specifics.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "postgres")
	Type string

	// Path is the file path for file-based databases (DuckDB, SQLite).
	// Use ":memory:" for in-memory databases
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Schema is the default schema to use
	Schema string

	// Project is the default project for project-qualified dialects
	Project string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// ListColumns returns the column names of a table in schema order.
	// Returns NotFoundError when the table is absent and SchemaError when
	// metadata retrieval fails for any other reason.
	ListColumns(ctx context.Context, table string) ([]string, error)

	// Execute runs a query and returns the fully materialized rows with
	// the result's column names. Backend failures surface as
	// ExecutionError.
	Execute(ctx context.Context, sql string) (rows [][]any, columns []string, err error)

	// Dialect returns the SQL dialect this adapter speaks.
	Dialect() *dialect.Dialect
}
