package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <dialect> <table>",
		Short: "List the columns of a table",
		Example: `  leapdiff columns duckdb demo_table_a --path warehouse.db
  leapdiff columns postgres public.orders --host localhost --database app`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, args)
		},
	}
}

func runColumns(cmd *cobra.Command, args []string) error {
	dbType := args[0]
	d, ok := dialect.Get(dbType)
	if !ok {
		return fmt.Errorf("unknown database type %q; known dialects: %s",
			dbType, strings.Join(dialect.List(), ", "))
	}

	cfg := currentConfig()

	ref, err := d.QualifyTableName(args[1], cfg.AdapterConfig(dbType).Project)
	if err != nil {
		return err
	}

	conn, err := openAdapter(cmd, cfg, dbType)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	columns, err := conn.ListColumns(cmd.Context(), ref)
	if err != nil {
		return err
	}

	switch cfg.OutputFormat {
	case "json", "jsonl":
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(columns)
	default:
		for _, col := range columns {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), col)
		}
		return nil
	}
}
