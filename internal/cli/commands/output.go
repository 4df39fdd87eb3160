package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/leapdiff/pkg/diff"
)

// writeRecords renders diff records in the configured output format.
// jsonl is the default wire format, one record per line.
func writeRecords(w io.Writer, records []diff.DiffRecord, pkCols []string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "table", "md":
		return writeRecordsTable(w, records, pkCols, format == "md")
	default:
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeRecordsTable(w io.Writer, records []diff.DiffRecord, pkCols []string, markdown bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// Keep the diff count footer as written instead of upper-cased.
	t.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, 0, len(pkCols)+4)
	for _, pk := range pkCols {
		header = append(header, pk)
	}
	header = append(header, "status", "column", "table1", "table2")
	t.AppendHeader(header)

	for _, rec := range records {
		key := make([]any, 0, len(pkCols))
		for _, pk := range pkCols {
			key = append(key, rec.Key[pk].String())
		}

		cols := make([]string, 0, len(rec.Columns))
		for col := range rec.Columns {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		if len(cols) == 0 {
			row := append(append(table.Row{}, key...), rec.Status.String(), "", "", "")
			t.AppendRow(row)
			continue
		}
		for _, col := range cols {
			cd := rec.Columns[col]
			row := append(append(table.Row{}, key...),
				rec.Status.String(), col, cd.Table1.String(), cd.Table2.String())
			t.AppendRow(row)
		}
	}
	t.AppendFooter(table.Row{fmt.Sprintf("(%d diffs)", len(records))})

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
