package commands

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdiff/pkg/adapter"
	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects and bundled drivers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

type dialectInfo struct {
	Name          string `json:"name"`
	Quote         string `json:"quote"`
	Qualification string `json:"qualification"`
	Driver        bool   `json:"driver"`
}

func runDialects(cmd *cobra.Command) error {
	var infos []dialectInfo
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		qual := "schema"
		if d.Qualification == dialect.QualifyProject {
			qual = "project"
		}
		infos = append(infos, dialectInfo{
			Name:          name,
			Quote:         d.Quote,
			Qualification: qual,
			Driver:        adapter.IsRegistered(name),
		})
	}

	cfg := currentConfig()
	if cfg.OutputFormat == "json" || cfg.OutputFormat == "jsonl" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dialect", "Quote", "Qualification", "Driver"})
	for _, info := range infos {
		driver := "yes"
		if !info.Driver {
			driver = "no (render only)"
		}
		t.AppendRow(table.Row{info.Name, info.Quote, info.Qualification, driver})
	}
	if cfg.OutputFormat == "md" {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
