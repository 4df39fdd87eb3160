// Package commands implements the leapdiff subcommands.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdiff/internal/cli/config"
	"github.com/leapstack-labs/leapdiff/pkg/adapter"
	"github.com/leapstack-labs/leapdiff/pkg/dialect"
	"github.com/leapstack-labs/leapdiff/pkg/diff"
)

// CompareOptions holds options for the compare command.
type CompareOptions struct {
	PKCols      []string
	IgnoreCols  []string
	ScalarCasts map[string]string
	Limit       int64
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <dialect> <table1> <table2>",
		Short: "Compare two tables and report their differences",
		Long: `Compare two tables from the same database and report per-row,
per-column differences, including rows present on only one side.

Rows are matched on the primary key columns; all other common columns are
compared unless ignored. One comparison query runs per invocation; the
result is reconciled into one diff record per differing row.`,
		Example: `  # Compare two DuckDB tables on their id column
  leapdiff compare duckdb demo_table_a demo_table_b --path warehouse.db

  # Composite key, ignored column, casts, capped output
  leapdiff compare postgres public.orders audit.orders \
    --pk-cols user_id,event_id --ignore-cols updated_at \
    --scalar-casts created_at=TIMESTAMP,amount=NUMERIC --limit 20`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, opts)
		},
	}

	addComparisonFlags(cmd, opts)

	return cmd
}

// addComparisonFlags registers the flags shared by compare and render.
func addComparisonFlags(cmd *cobra.Command, opts *CompareOptions) {
	cmd.Flags().StringSliceVar(&opts.PKCols, "pk-cols", []string{"id"}, "Comma-separated primary key columns")
	cmd.Flags().StringSliceVar(&opts.IgnoreCols, "ignore-cols", nil, "Comma-separated columns to exclude from comparison")
	cmd.Flags().StringToStringVar(&opts.ScalarCasts, "scalar-casts", nil, "Columns to cast before comparison (col=TYPE,...)")
	cmd.Flags().Int64Var(&opts.Limit, "limit", -1, "Maximum number of diff rows (-1 for no limit)")
}

func runCompare(cmd *cobra.Command, args []string, opts *CompareOptions) error {
	dbType := args[0]
	d, ok := dialect.Get(dbType)
	if !ok {
		return fmt.Errorf("unknown database type %q; known dialects: %s",
			dbType, strings.Join(dialect.List(), ", "))
	}

	cfg := currentConfig()
	logger := config.GetLogger(cmd.Context())

	conn, err := openAdapter(cmd, cfg, dbType)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	records, err := diff.Compare(cmd.Context(), conn, d, diff.Options{
		Table1:         args[1],
		Table2:         args[2],
		PrimaryKeyCols: opts.PKCols,
		IgnoreCols:     opts.IgnoreCols,
		ScalarCasts:    opts.ScalarCasts,
		RowLimit:       rowLimit(opts.Limit),
		DefaultProject: cfg.AdapterConfig(dbType).Project,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	return writeRecords(cmd.OutOrStdout(), records, opts.PKCols, cfg.OutputFormat)
}

// rowLimit converts the flag value to the optional row limit.
func rowLimit(limit int64) *int64 {
	if limit < 0 {
		return nil
	}
	return &limit
}

// currentConfig returns the loaded config, or defaults when none was
// loaded (tests invoking commands directly).
func currentConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{OutputFormat: config.DefaultOutput}
}

// openAdapter creates and connects the adapter for a database type.
func openAdapter(cmd *cobra.Command, cfg *config.Config, dbType string) (adapter.Adapter, error) {
	logger := config.GetLogger(cmd.Context())
	adapterCfg := cfg.AdapterConfig(dbType)

	conn, err := adapter.NewAdapter(adapterCfg, logger)
	if err != nil {
		return nil, err
	}
	if err := conn.Connect(cmd.Context(), adapterCfg); err != nil {
		return nil, err
	}
	return conn, nil
}
