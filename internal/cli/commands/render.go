package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdiff/pkg/adapter"
	"github.com/leapstack-labs/leapdiff/pkg/dialect"
	"github.com/leapstack-labs/leapdiff/pkg/diff"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	CompareOptions
	Columns []string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <dialect> <table1> <table2>",
		Short: "Print the comparison query without executing it",
		Long: `Render the comparison SQL for two tables and print it to stdout.

When the dialect has a bundled driver, column lists are fetched from the
database. For dialects without one (bigquery), pass the common column list
explicitly with --columns.`,
		Example: `  # Render against a live DuckDB database
  leapdiff render duckdb demo_table_a demo_table_b --path warehouse.db

  # Render for BigQuery without connecting
  leapdiff render bigquery dataset1.events dataset2.events \
    --project my-gcp-project --columns id,name,value --pk-cols id`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	addComparisonFlags(cmd, &opts.CompareOptions)
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil,
		"Common column list for both tables (required when no driver is bundled)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	dbType := args[0]
	d, ok := dialect.Get(dbType)
	if !ok {
		return fmt.Errorf("unknown database type %q; known dialects: %s",
			dbType, strings.Join(dialect.List(), ", "))
	}

	cfg := currentConfig()
	defaultProject := cfg.AdapterConfig(dbType).Project

	ref1, err := d.QualifyTableName(args[1], defaultProject)
	if err != nil {
		return err
	}
	ref2, err := d.QualifyTableName(args[2], defaultProject)
	if err != nil {
		return err
	}

	cols1, cols2 := opts.Columns, opts.Columns
	if len(opts.Columns) == 0 {
		if !adapter.IsRegistered(dbType) {
			return fmt.Errorf("no driver for database type %q; pass the column list with --columns", dbType)
		}
		conn, err := openAdapter(cmd, cfg, dbType)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()

		if cols1, err = conn.ListColumns(cmd.Context(), ref1); err != nil {
			return err
		}
		if cols2, err = conn.ListColumns(cmd.Context(), ref2); err != nil {
			return err
		}
	}

	spec := &diff.ComparisonSpec{
		Table1:         diff.TableDescriptor{QualifiedName: d.QuoteTableRef(ref1), Columns: cols1},
		Table2:         diff.TableDescriptor{QualifiedName: d.QuoteTableRef(ref2), Columns: cols2},
		PrimaryKeyCols: opts.PKCols,
		IgnoreCols:     opts.IgnoreCols,
		ScalarCasts:    opts.ScalarCasts,
		RowLimit:       rowLimit(opts.Limit),
	}

	query, err := diff.BuildComparisonQuery(spec, d)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), query)
	return err
}
