package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		dialect  string
		name     string
		expected string
	}{
		{"duckdb", "user_id", `"user_id"`},
		{"postgres", "order", `"order"`},
		{"sqlite", "a b", `"a b"`},
		{"mysql", "user_id", "`user_id`"},
		{"bigquery", "event", "`event`"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.name, func(t *testing.T) {
			d, ok := Get(tt.dialect)
			require.True(t, ok, "dialect %q not registered", tt.dialect)
			assert.Equal(t, tt.expected, d.QuoteIdentifier(tt.name))
		})
	}
}

func TestQualifyTableName_Schema(t *testing.T) {
	d, ok := Get("duckdb")
	require.True(t, ok)

	// Schema-qualified dialects pass references through unchanged.
	for _, name := range []string{"orders", "main.orders", "x.y.z"} {
		got, err := d.QualifyTableName(name, "")
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestQualifyTableName_Project(t *testing.T) {
	d, ok := Get("bigquery")
	require.True(t, ok)

	t.Run("three parts pass through", func(t *testing.T) {
		got, err := d.QualifyTableName("proj.dataset.events", "other")
		require.NoError(t, err)
		assert.Equal(t, "proj.dataset.events", got)
	})

	t.Run("two parts expand with default", func(t *testing.T) {
		got, err := d.QualifyTableName("dataset.events", "proj")
		require.NoError(t, err)
		assert.Equal(t, "proj.dataset.events", got)
	})

	t.Run("two parts without default fail", func(t *testing.T) {
		_, err := d.QualifyTableName("dataset.events", "")
		require.Error(t, err)

		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T", err)
		assert.Equal(t, "dataset.events", formatErr.Ref)
	})

	t.Run("one part fails", func(t *testing.T) {
		_, err := d.QualifyTableName("events", "proj")
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T", err)
	})

	t.Run("four parts fail", func(t *testing.T) {
		_, err := d.QualifyTableName("a.b.c.d", "proj")
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T", err)
	})
}

func TestQuoteTableRef(t *testing.T) {
	duckdb, _ := Get("duckdb")
	bigquery, _ := Get("bigquery")

	assert.Equal(t, `"orders"`, duckdb.QuoteTableRef("orders"))
	assert.Equal(t, `"main"."orders"`, duckdb.QuoteTableRef("main.orders"))
	assert.Equal(t, "`proj`.`dataset`.`events`", bigquery.QuoteTableRef("proj.dataset.events"))
}

func TestFormatPlaceholder(t *testing.T) {
	duckdb, _ := Get("duckdb")
	postgres, _ := Get("postgres")

	assert.Equal(t, "?", duckdb.FormatPlaceholder(1))
	assert.Equal(t, "?", duckdb.FormatPlaceholder(3))
	assert.Equal(t, "$1", postgres.FormatPlaceholder(1))
	assert.Equal(t, "$2", postgres.FormatPlaceholder(2))
}

func TestRegistry(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		d, ok := Get("DuckDB")
		require.True(t, ok)
		assert.Equal(t, "duckdb", d.Name)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, ok := Get("oracle")
		assert.False(t, ok)
	})

	t.Run("list is sorted and complete", func(t *testing.T) {
		names := List()
		assert.Contains(t, names, "duckdb")
		assert.Contains(t, names, "postgres")
		assert.Contains(t, names, "sqlite")
		assert.Contains(t, names, "mysql")
		assert.Contains(t, names, "bigquery")
		assert.IsIncreasing(t, names)
	})
}
