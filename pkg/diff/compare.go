package diff

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// Connection is the minimal database surface the comparison needs. It is
// satisfied by pkg/adapter implementations; the core issues exactly one
// metadata call per table and one query per run and applies no timeout or
// retry policy of its own.
type Connection interface {
	// ListColumns returns the table's column names in schema order.
	ListColumns(ctx context.Context, table string) ([]string, error)

	// Execute runs sql and returns the fully materialized rows together
	// with the result's column names.
	Execute(ctx context.Context, sql string) (rows [][]any, columns []string, err error)
}

// Options configures one comparison run.
type Options struct {
	// Table1 and Table2 are user-supplied table references in the
	// dialect's notation.
	Table1 string
	Table2 string

	// PrimaryKeyCols match rows between the tables; must be non-empty.
	PrimaryKeyCols []string

	// IgnoreCols are excluded from value comparison.
	IgnoreCols []string

	// ScalarCasts maps columns to cast target types applied on both sides.
	ScalarCasts map[string]string

	// RowLimit caps the number of diff rows; nil means unlimited.
	RowLimit *int64

	// DefaultProject expands two-part references for project-qualified
	// dialects.
	DefaultProject string

	// Logger receives progress and diagnostics; nil discards.
	Logger *slog.Logger
}

// Compare runs one full comparison: resolves and describes both tables,
// builds the comparison query, executes it once through conn, and
// reconciles the result. Any error from the dialect, the spec validation,
// the query builder, or the connection aborts the run.
func Compare(ctx context.Context, conn Connection, d *dialect.Dialect, opts Options) ([]DiffRecord, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ref1, err := d.QualifyTableName(opts.Table1, opts.DefaultProject)
	if err != nil {
		return nil, err
	}
	ref2, err := d.QualifyTableName(opts.Table2, opts.DefaultProject)
	if err != nil {
		return nil, err
	}

	cols1, err := conn.ListColumns(ctx, ref1)
	if err != nil {
		return nil, err
	}
	cols2, err := conn.ListColumns(ctx, ref2)
	if err != nil {
		return nil, err
	}

	spec := &ComparisonSpec{
		Table1:         TableDescriptor{QualifiedName: d.QuoteTableRef(ref1), Columns: cols1},
		Table2:         TableDescriptor{QualifiedName: d.QuoteTableRef(ref2), Columns: cols2},
		PrimaryKeyCols: opts.PrimaryKeyCols,
		IgnoreCols:     opts.IgnoreCols,
		ScalarCasts:    opts.ScalarCasts,
		RowLimit:       opts.RowLimit,
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(spec.CompareColumns()) == 0 {
		logger.Warn("no columns to compare; checking row existence only",
			slog.String("table1", ref1), slog.String("table2", ref2))
	}

	query, err := BuildComparisonQuery(spec, d)
	if err != nil {
		return nil, err
	}
	logger.Debug("built comparison query", slog.String("sql", query))

	rows, columns, err := conn.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	logger.Debug("executed comparison query", slog.Int("rows", len(rows)))

	return Reconcile(rows, columns, spec), nil
}
