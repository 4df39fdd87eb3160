package diff

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// Aliases used for the per-side prepared subqueries. Output columns are
// prefixed with these ("t1_id", "t2_id", ...) so the flattened join result
// can be reconciled by name.
const (
	side1 = "t1"
	side2 = "t2"
)

// BuildComparisonQuery constructs the single comparison query for spec:
// two prepared CTEs projecting the primary-key and compare columns of each
// side, full-outer-joined on the primary key, filtered down to rows with
// any value difference or one-sided presence.
//
// The function is pure and deterministic: compare columns are sorted, so
// the same spec always yields byte-identical SQL. All identifiers pass
// through the dialect's quoting; no other string is interpolated.
func BuildComparisonQuery(spec *ComparisonSpec, d *dialect.Dialect) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	compareCols := spec.CompareColumns()
	selected := append(append([]string{}, spec.PrimaryKeyCols...), compareCols...)

	proj1, err := buildProjection(selected, side1, spec.ScalarCasts, d)
	if err != nil {
		return "", err
	}
	proj2, err := buildProjection(selected, side2, spec.ScalarCasts, d)
	if err != nil {
		return "", err
	}

	joinConds := make([]string, len(spec.PrimaryKeyCols))
	for i, pk := range spec.PrimaryKeyCols {
		joinConds[i] = aliasedColumn(side1, pk, d) + " = " + aliasedColumn(side2, pk, d)
	}

	var whereParts []string
	if len(compareCols) > 0 {
		diffConds := make([]string, len(compareCols))
		for i, col := range compareCols {
			diffConds[i] = aliasedColumn(side1, col, d) + " IS DISTINCT FROM " + aliasedColumn(side2, col, d)
		}
		whereParts = append(whereParts, "("+strings.Join(diffConds, " OR ")+")")
	}
	whereParts = append(whereParts,
		"("+strings.Join(sideNullConds(side2, spec.PrimaryKeyCols, d), " AND ")+")",
		"("+strings.Join(sideNullConds(side1, spec.PrimaryKeyCols, d), " AND ")+")",
	)

	keySelects := make([]string, len(spec.PrimaryKeyCols))
	for i, pk := range spec.PrimaryKeyCols {
		keySelects[i] = "COALESCE(" + aliasedColumn(side1, pk, d) + ", " + aliasedColumn(side2, pk, d) + ")" +
			" AS " + d.QuoteIdentifier(pk)
	}

	var b strings.Builder
	b.WriteString("WITH table1_prepared AS (\n")
	b.WriteString("    SELECT " + strings.Join(proj1, ", ") + " FROM " + spec.Table1.QualifiedName + " " + side1 + "\n")
	b.WriteString("),\n")
	b.WriteString("table2_prepared AS (\n")
	b.WriteString("    SELECT " + strings.Join(proj2, ", ") + " FROM " + spec.Table2.QualifiedName + " " + side2 + "\n")
	b.WriteString(")\n")
	b.WriteString("SELECT\n")
	b.WriteString("    " + strings.Join(keySelects, ", ") + ",\n")
	b.WriteString("    " + side1 + ".*,\n")
	b.WriteString("    " + side2 + ".*\n")
	b.WriteString("FROM table1_prepared " + side1 + "\n")
	b.WriteString("FULL OUTER JOIN table2_prepared " + side2 + " ON " + strings.Join(joinConds, " AND ") + "\n")
	b.WriteString("WHERE " + strings.Join(whereParts, " OR "))
	if spec.RowLimit != nil {
		b.WriteString("\nLIMIT " + strconv.FormatInt(*spec.RowLimit, 10))
	}
	return b.String(), nil
}

// buildProjection builds the select expressions for one side's prepared
// subquery: the source column (cast when requested) aliased as
// <side>_<column>.
func buildProjection(cols []string, side string, casts map[string]string, d *dialect.Dialect) ([]string, error) {
	exprs := make([]string, len(cols))
	for i, col := range cols {
		expr := side + "." + d.QuoteIdentifier(col)
		if castType, ok := casts[col]; ok {
			var err error
			expr, err = ResolveCastExpression(expr, castType)
			if err != nil {
				return nil, err
			}
		}
		exprs[i] = expr + " AS " + d.QuoteIdentifier(side+"_"+col)
	}
	return exprs, nil
}

// aliasedColumn references a side's prepared output column, e.g. t1."t1_id".
func aliasedColumn(side, col string, d *dialect.Dialect) string {
	return side + "." + d.QuoteIdentifier(side+"_"+col)
}

// sideNullConds builds the per-key IS NULL conditions that detect a row
// missing on the given side.
func sideNullConds(side string, pkCols []string, d *dialect.Dialect) []string {
	conds := make([]string, len(pkCols))
	for i, pk := range pkCols {
		conds[i] = aliasedColumn(side, pk, d) + " IS NULL"
	}
	return conds
}
