// Package cli provides the command-line interface for leapdiff.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdiff/internal/cli/commands"
	"github.com/leapstack-labs/leapdiff/internal/cli/config"
	"github.com/leapstack-labs/leapdiff/pkg/adapter"
	"github.com/leapstack-labs/leapdiff/pkg/dialect"
	"github.com/leapstack-labs/leapdiff/pkg/diff"

	// Bundled drivers register their adapters here. A dialect without a
	// bundled driver (bigquery) supports query generation only.
	_ "github.com/leapstack-labs/leapdiff/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapdiff/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/leapdiff/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapdiff/pkg/adapters/sqlite"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapdiff",
		Short: "LeapDiff - Cross-Database Table Comparison",
		Long: `LeapDiff compares two relational tables, possibly living in different SQL
engines, and reports per-row, per-column differences including rows present
on only one side. A single full-outer-join query per run does the heavy
lifting inside the database.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Store config in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

			// Build the logger; --verbose enables debug output
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapdiff.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (jsonl|json|table|md)")
	rootCmd.PersistentFlags().String("path", "", "Database file path for file-based backends (duckdb, sqlite)")
	rootCmd.PersistentFlags().String("host", "", "Database host")
	rootCmd.PersistentFlags().Int("port", 0, "Database port")
	rootCmd.PersistentFlags().String("database", "", "Database name")
	rootCmd.PersistentFlags().String("user", "", "Database user")
	rootCmd.PersistentFlags().String("password", "", "Database password")
	rootCmd.PersistentFlags().String("schema", "", "Default schema")
	rootCmd.PersistentFlags().String("project", "", "Default project for project-qualified dialects")

	// Register completion for format flag
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"jsonl", "json", "table", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewColumnsCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command, reporting known error kinds distinctly.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if kind := errorKind(err); kind != "" {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

// errorKind classifies the comparison error taxonomy for reporting.
// Unknown errors return "" and are reported generically.
func errorKind(err error) string {
	var (
		configErr   *diff.ConfigError
		castErr     *diff.UnsupportedTypeError
		formatErr   *dialect.FormatError
		notFoundErr *adapter.NotFoundError
		schemaErr   *adapter.SchemaError
		execErr     *adapter.ExecutionError
		noDriverErr *adapter.UnknownAdapterError
	)
	switch {
	case errors.As(err, &configErr):
		return "config"
	case errors.As(err, &castErr):
		return "cast"
	case errors.As(err, &formatErr):
		return "table reference"
	case errors.As(err, &notFoundErr):
		return "not found"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &execErr):
		return "execution"
	case errors.As(err, &noDriverErr):
		return "driver"
	default:
		return ""
	}
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{OutputFormat: config.DefaultOutput}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapdiff.

To load completions:

Bash:
  $ source <(leapdiff completion bash)

Zsh:
  $ leapdiff completion zsh > "${fpath[1]}/_leapdiff"

Fish:
  $ leapdiff completion fish | source

PowerShell:
  PS> leapdiff completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
