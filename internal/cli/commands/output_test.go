package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdiff/pkg/diff"
)

func sampleRecords() []diff.DiffRecord {
	return []diff.DiffRecord{
		{
			Key:    map[string]diff.Value{"id": diff.Int64Value(2)},
			Status: diff.StatusValueDifferences,
			Columns: map[string]diff.ColumnDiff{
				"value": {Table1: diff.Int64Value(200), Table2: diff.Int64Value(250)},
			},
		},
		{
			Key:    map[string]diff.Value{"id": diff.Int64Value(3)},
			Status: diff.StatusTable1Only,
			Columns: map[string]diff.ColumnDiff{
				"name":  {Table1: diff.StringValue("Eve"), Table2: diff.Null()},
				"value": {Table1: diff.Int64Value(300), Table2: diff.Null()},
			},
		},
	}
}

func TestWriteRecords_JSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, sampleRecords(), []string{"id"}, "jsonl"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "one JSON object per line")
	assert.JSONEq(t, `{
		"key": {"id": 2},
		"status": "value_differences",
		"columns": {"value": {"table1": 200, "table2": 250}}
	}`, lines[0])
	assert.Contains(t, lines[1], `"present_in_table1_only"`)
}

func TestWriteRecords_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, sampleRecords(), []string{"id"}, "json"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "["), "json format is a single array")
	assert.Contains(t, out, `"value_differences"`)
}

func TestWriteRecords_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, sampleRecords(), []string{"id"}, "table"))

	out := buf.String()
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "value_differences")
	assert.Contains(t, out, "Eve")
	assert.Contains(t, out, "(2 diffs)", "footer keeps its literal casing")
	assert.NotContains(t, out, "(2 DIFFS)")
}

func TestWriteRecords_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, sampleRecords(), []string{"id"}, "md"))
	assert.Contains(t, buf.String(), "|")
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, nil, []string{"id"}, "jsonl"))
	assert.Empty(t, buf.String())
}
