// Package diff implements the core of cross-database table comparison: a
// dialect-abstracted comparison query builder and the reconciliation of its
// flattened full-outer-join result into structured diff records.
//
// The package is fully synchronous: one query is built per comparison run,
// executed once through a caller-supplied Connection, and the materialized
// result is reconciled in place. Connections, CLI parsing, and output
// formatting live outside this package.
package diff

import (
	"fmt"
	"sort"
)

// TableDescriptor describes one side of a comparison. Immutable once
// fetched from schema metadata.
type TableDescriptor struct {
	// QualifiedName is the dialect-quoted SQL reference for the table,
	// ready for interpolation into a FROM clause.
	QualifiedName string

	// Columns are the table's column names in schema order.
	Columns []string
}

// ComparisonSpec is the validated input for one comparison run.
type ComparisonSpec struct {
	Table1 TableDescriptor
	Table2 TableDescriptor

	// PrimaryKeyCols match rows between the two tables. Must be non-empty
	// and each must be a common column.
	PrimaryKeyCols []string

	// IgnoreCols are excluded from value comparison.
	IgnoreCols []string

	// ScalarCasts maps column names to cast target types. Keys that name
	// columns not selected by the comparison are ignored.
	ScalarCasts map[string]string

	// RowLimit caps the number of diff rows at the query level. Nil means
	// no limit.
	RowLimit *int64
}

// CompareColumns returns the columns whose values are diffed: common to
// both tables, not a primary key, not ignored. Sorted lexicographically so
// generated SQL is deterministic.
func (s *ComparisonSpec) CompareColumns() []string {
	pk := make(map[string]struct{}, len(s.PrimaryKeyCols))
	for _, c := range s.PrimaryKeyCols {
		pk[c] = struct{}{}
	}
	ignored := make(map[string]struct{}, len(s.IgnoreCols))
	for _, c := range s.IgnoreCols {
		ignored[c] = struct{}{}
	}

	common := s.commonColumns()
	cols := make([]string, 0, len(common))
	for c := range common {
		if _, isPK := pk[c]; isPK {
			continue
		}
		if _, skip := ignored[c]; skip {
			continue
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func (s *ComparisonSpec) commonColumns() map[string]struct{} {
	in1 := make(map[string]struct{}, len(s.Table1.Columns))
	for _, c := range s.Table1.Columns {
		in1[c] = struct{}{}
	}
	common := make(map[string]struct{})
	for _, c := range s.Table2.Columns {
		if _, ok := in1[c]; ok {
			common[c] = struct{}{}
		}
	}
	return common
}

// Validate checks the spec's invariants. An empty compare set is valid
// (existence-only comparison); an empty or non-common primary key is not.
func (s *ComparisonSpec) Validate() error {
	if len(s.PrimaryKeyCols) == 0 {
		return &ConfigError{Reason: "primary key columns must be specified and non-empty"}
	}
	common := s.commonColumns()
	for _, pk := range s.PrimaryKeyCols {
		if _, ok := common[pk]; !ok {
			return &ConfigError{
				Reason: fmt.Sprintf("primary key column %q is not a common column of both tables", pk),
			}
		}
	}
	return nil
}

// ConfigError is returned when a comparison spec violates its invariants.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid comparison configuration: " + e.Reason
}
