package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and Execute implementations plus the information_schema column
// listing shared by most backends.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Execute runs a query and materializes the full result set.
func (b *BaseSQLAdapter) Execute(ctx context.Context, sqlStr string) ([][]any, []string, error) {
	if b.DB == nil {
		return nil, nil, fmt.Errorf("database connection not established")
	}

	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, nil, &ExecutionError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, &ExecutionError{Err: err}
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, &ExecutionError{Err: err}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &ExecutionError{Err: err}
	}

	return result, columns, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ParseQualifiedName splits a table reference into schema and name. Falls
// back to the dialect's default schema, then the connected database.
func (b *BaseSQLAdapter) ParseQualifiedName(table string, d *dialect.Dialect) (schema, name string) {
	if parts := strings.SplitN(table, ".", 2); len(parts) == 2 {
		return parts[0], parts[1]
	}
	if d.DefaultSchema != "" {
		return d.DefaultSchema, table
	}
	return b.Cfg.Database, table
}

// ListColumnsInformationSchema provides a shared implementation of
// ListColumns backed by information_schema.columns with
// dialect-appropriate placeholders.
func (b *BaseSQLAdapter) ListColumnsInformationSchema(ctx context.Context, table string, d *dialect.Dialect) ([]string, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := b.ParseQualifiedName(table, d)

	// The placeholders come from the dialect and are safe (? or $N)
	//nolint:gosec // Placeholders are safe - they come from dialect.FormatPlaceholder
	query := fmt.Sprintf(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, d.FormatPlaceholder(1), d.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &SchemaError{Table: table, Err: err}
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &SchemaError{Table: table, Err: err}
	}

	if len(columns) == 0 {
		return nil, &NotFoundError{Table: table}
	}
	return columns, nil
}
