package diff

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

func mustDialect(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, ok := dialect.Get(name)
	require.True(t, ok, "dialect %q not registered", name)
	return d
}

func TestBuildComparisonQuery(t *testing.T) {
	spec := testSpec()
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	expected := `WITH table1_prepared AS (
    SELECT t1."id" AS "t1_id", t1."created_at" AS "t1_created_at", t1."name" AS "t1_name", t1."value" AS "t1_value" FROM "demo_table_a" t1
),
table2_prepared AS (
    SELECT t2."id" AS "t2_id", t2."created_at" AS "t2_created_at", t2."name" AS "t2_name", t2."value" AS "t2_value" FROM "demo_table_b" t2
)
SELECT
    COALESCE(t1."t1_id", t2."t2_id") AS "id",
    t1.*,
    t2.*
FROM table1_prepared t1
FULL OUTER JOIN table2_prepared t2 ON t1."t1_id" = t2."t2_id"
WHERE (t1."t1_created_at" IS DISTINCT FROM t2."t2_created_at" OR t1."t1_name" IS DISTINCT FROM t2."t2_name" OR t1."t1_value" IS DISTINCT FROM t2."t2_value") OR (t2."t2_id" IS NULL) OR (t1."t1_id" IS NULL)`
	assert.Equal(t, expected, query)
}

func TestBuildComparisonQuery_Deterministic(t *testing.T) {
	spec := testSpec()
	d := mustDialect(t, "duckdb")

	first, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	// Same spec, repeatedly built, yields byte-identical SQL.
	for range 5 {
		again, err := BuildComparisonQuery(spec, d)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildComparisonQuery_ScalarCasts(t *testing.T) {
	spec := testSpec()
	spec.ScalarCasts = map[string]string{"created_at": "timestamp", "value": "FLOAT64"}
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	assert.Contains(t, query, `CAST(t1."created_at" AS TIMESTAMP) AS "t1_created_at"`)
	assert.Contains(t, query, `CAST(t2."created_at" AS TIMESTAMP) AS "t2_created_at"`)
	assert.Contains(t, query, `CAST(t1."value" AS FLOAT64) AS "t1_value"`)
	// Uncast columns keep the bare reference.
	assert.Contains(t, query, `t1."name" AS "t1_name"`)
}

func TestBuildComparisonQuery_CastOnPrimaryKey(t *testing.T) {
	spec := testSpec()
	spec.ScalarCasts = map[string]string{"id": "string"}
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)
	assert.Contains(t, query, `CAST(t1."id" AS STRING) AS "t1_id"`)
}

func TestBuildComparisonQuery_UnsupportedCast(t *testing.T) {
	spec := testSpec()
	spec.ScalarCasts = map[string]string{"value": "frobnicate"}
	d := mustDialect(t, "duckdb")

	_, err := BuildComparisonQuery(spec, d)
	require.Error(t, err)

	var castErr *UnsupportedTypeError
	require.True(t, errors.As(err, &castErr), "expected *UnsupportedTypeError, got %T", err)
}

func TestBuildComparisonQuery_RowLimit(t *testing.T) {
	spec := testSpec()
	limit := int64(10)
	spec.RowLimit = &limit
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "\nLIMIT 10"), "query should end with the limit clause:\n%s", query)
}

func TestBuildComparisonQuery_EmptyCompareSet(t *testing.T) {
	spec := testSpec()
	spec.IgnoreCols = []string{"name", "value", "created_at"}
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	// Existence-only comparison: no difference conditions, just the
	// one-sided presence filter.
	assert.NotContains(t, query, "IS DISTINCT FROM")
	assert.Contains(t, query, `WHERE (t2."t2_id" IS NULL) OR (t1."t1_id" IS NULL)`)
}

func TestBuildComparisonQuery_CompositeKey(t *testing.T) {
	spec := testSpec()
	spec.PrimaryKeyCols = []string{"id", "name"}
	d := mustDialect(t, "duckdb")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	assert.Contains(t, query, `ON t1."t1_id" = t2."t2_id" AND t1."t1_name" = t2."t2_name"`)
	assert.Contains(t, query, `(t2."t2_id" IS NULL AND t2."t2_name" IS NULL)`)
	assert.Contains(t, query, `(t1."t1_id" IS NULL AND t1."t1_name" IS NULL)`)
	assert.Contains(t, query, `COALESCE(t1."t1_id", t2."t2_id") AS "id", COALESCE(t1."t1_name", t2."t2_name") AS "name"`)
}

func TestBuildComparisonQuery_BacktickDialect(t *testing.T) {
	spec := testSpec()
	spec.Table1.QualifiedName = "`proj`.`d1`.`events`"
	spec.Table2.QualifiedName = "`proj`.`d2`.`events`"
	d := mustDialect(t, "bigquery")

	query, err := BuildComparisonQuery(spec, d)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM `proj`.`d1`.`events` t1")
	assert.Contains(t, query, "COALESCE(t1.`t1_id`, t2.`t2_id`) AS `id`")
	assert.Contains(t, query, "t1.`t1_name` IS DISTINCT FROM t2.`t2_name`")
}

func TestBuildComparisonQuery_InvalidSpec(t *testing.T) {
	spec := testSpec()
	spec.PrimaryKeyCols = nil
	d := mustDialect(t, "duckdb")

	_, err := BuildComparisonQuery(spec, d)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %T", err)
}
