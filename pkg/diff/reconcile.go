package diff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status classifies why a row appears in the diff. Statuses combine as a
// bit set, though presence-only and value-difference statuses are mutually
// exclusive by construction.
type Status uint8

const (
	// StatusValueDifferences marks a row present on both sides with at
	// least one differing compare column.
	StatusValueDifferences Status = 1 << iota
	// StatusTable1Only marks a row present only in table1.
	StatusTable1Only
	// StatusTable2Only marks a row present only in table2.
	StatusTable2Only
)

// String renders the status in its wire form, e.g. "value_differences".
func (s Status) String() string {
	var parts []string
	if s&StatusValueDifferences != 0 {
		parts = append(parts, "value_differences")
	}
	if s&StatusTable1Only != 0 {
		parts = append(parts, "present_in_table1_only")
	}
	if s&StatusTable2Only != 0 {
		parts = append(parts, "present_in_table2_only")
	}
	return strings.Join(parts, ",")
}

// MarshalJSON emits the status string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ColumnDiff holds one column's value on each side. The missing side of a
// one-sided row is NULL.
type ColumnDiff struct {
	Table1 Value `json:"table1"`
	Table2 Value `json:"table2"`
}

// DiffRecord is one reconciled difference: the row's primary key values,
// its presence status, and the columns that differ.
type DiffRecord struct {
	Key     map[string]Value      `json:"key"`
	Status  Status                `json:"status"`
	Columns map[string]ColumnDiff `json:"columns"`
}

// Reconcile turns the flattened comparison query result into diff records.
// rows are positionally paired with columnNames. Output order follows the
// query result; no additional sort or truncation is applied (the row limit,
// if any, was enforced in SQL).
//
// Rows missing an expected aliased column are an invariant violation of the
// query/reconciler pair and panic rather than being skipped.
func Reconcile(rows [][]any, columnNames []string, spec *ComparisonSpec) []DiffRecord {
	compareCols := spec.CompareColumns()

	var records []DiffRecord
	for _, row := range rows {
		if len(row) != len(columnNames) {
			panic(fmt.Sprintf("diff: row has %d values for %d result columns", len(row), len(columnNames)))
		}
		byName := make(map[string]Value, len(row))
		for i, name := range columnNames {
			byName[name] = FromAny(row[i])
		}

		if rec, ok := reconcileRow(byName, spec.PrimaryKeyCols, compareCols); ok {
			records = append(records, rec)
		}
	}
	return records
}

func reconcileRow(byName map[string]Value, pkCols, compareCols []string) (DiffRecord, bool) {
	rec := DiffRecord{
		Key:     make(map[string]Value, len(pkCols)),
		Columns: make(map[string]ColumnDiff),
	}
	for _, pk := range pkCols {
		rec.Key[pk] = mustValue(byName, pk)
	}

	// A row is one-sided when every pk alias of the other side is NULL and
	// at least one of its own pk aliases is not. Both cannot hold at once
	// for a row the join produced.
	table1Only := allNull(byName, side2, pkCols) && !allNull(byName, side1, pkCols)
	table2Only := allNull(byName, side1, pkCols) && !allNull(byName, side2, pkCols)

	switch {
	case table1Only:
		rec.Status = StatusTable1Only
		for _, col := range compareCols {
			rec.Columns[col] = ColumnDiff{Table1: mustValue(byName, side1+"_"+col), Table2: Null()}
		}
	case table2Only:
		rec.Status = StatusTable2Only
		for _, col := range compareCols {
			rec.Columns[col] = ColumnDiff{Table1: Null(), Table2: mustValue(byName, side2+"_"+col)}
		}
	default:
		for _, col := range compareCols {
			v1 := mustValue(byName, side1+"_"+col)
			v2 := mustValue(byName, side2+"_"+col)
			if !v1.Equal(v2) {
				rec.Columns[col] = ColumnDiff{Table1: v1, Table2: v2}
				rec.Status |= StatusValueDifferences
			}
		}
	}

	// The filter is an OR over difference and presence conditions; a row
	// can satisfy it through SQL-level inequality that the coerced
	// comparison considers equal. Such rows produce no record.
	if len(rec.Columns) == 0 && rec.Status&(StatusTable1Only|StatusTable2Only) == 0 {
		return DiffRecord{}, false
	}
	return rec, true
}

func allNull(byName map[string]Value, side string, pkCols []string) bool {
	for _, pk := range pkCols {
		if !mustValue(byName, side+"_"+pk).IsNull() {
			return false
		}
	}
	return true
}

func mustValue(byName map[string]Value, name string) Value {
	v, ok := byName[name]
	if !ok {
		panic(fmt.Sprintf("diff: column %q missing from comparison result", name))
	}
	return v
}
