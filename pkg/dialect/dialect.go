// Package dialect provides SQL dialect configuration for cross-database
// table comparison.
//
// This package contains the public contract for dialect definitions used by
// the query builder and the database adapters. Builtin dialects are
// registered from builtin.go; adapters reference them by name.
package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// Qualification classifies how a dialect qualifies table references.
type Qualification int

const (
	// QualifySchema means table references are [schema.]table
	// (DuckDB, Postgres, SQLite, MySQL).
	QualifySchema Qualification = iota
	// QualifyProject means table references are project.dataset.table
	// (BigQuery). Two-part references are expanded with a default project.
	QualifyProject
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// Dialect represents a SQL dialect configuration.
// Dialects are immutable after registration; they carry no connection state.
type Dialect struct {
	Name string

	// Quote is the identifier delimiter: " or `
	Quote string

	// DefaultSchema is the default schema name ("main" for DuckDB,
	// "public" for Postgres). Empty for project-qualified dialects.
	DefaultSchema string

	// Qualification defines the table reference shape.
	Qualification Qualification

	// Placeholder defines how query parameters are formatted.
	Placeholder PlaceholderStyle
}

// QuoteIdentifier wraps name in the dialect's identifier delimiter.
//
// Identifiers containing the delimiter character itself are not escaped and
// are unsupported; a query built from such an identifier fails at execution.
func (d *Dialect) QuoteIdentifier(name string) string {
	return d.Quote + name + d.Quote
}

// QualifyTableName resolves a user-supplied table reference into a fully
// qualified (but unquoted) reference.
//
// For schema-qualified dialects the name is used as-is; a one-part name
// resolves against the connection's default schema at query time. For
// project-qualified dialects a three-part name passes through, a two-part
// name is expanded with defaultProject, and any other part count is a
// FormatError.
func (d *Dialect) QualifyTableName(name, defaultProject string) (string, error) {
	if d.Qualification == QualifySchema {
		return name, nil
	}

	switch parts := strings.Split(name, "."); len(parts) {
	case 3:
		return name, nil
	case 2:
		if defaultProject == "" {
			return "", &FormatError{
				Ref:    name,
				Reason: "missing project ID and no default project configured; use project.dataset.table",
			}
		}
		return defaultProject + "." + name, nil
	default:
		return "", &FormatError{
			Ref:    name,
			Reason: "expected [project.]dataset.table",
		}
	}
}

// QuoteTableRef quotes each dot-separated part of a qualified table
// reference, producing e.g. "schema"."table" or `project`.`dataset`.`table`.
func (d *Dialect) QuoteTableRef(qualified string) string {
	parts := strings.Split(qualified, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// FormatPlaceholder returns the placeholder for parameter n (1-based).
func (d *Dialect) FormatPlaceholder(n int) string {
	if d.Placeholder == PlaceholderDollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// FormatError is returned when a table reference does not match the shape
// the dialect requires.
type FormatError struct {
	Ref    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid table reference %q: %s", e.Ref, e.Reason)
}
