package dialect

// Builtin dialects. A dialect only describes quoting and qualification
// rules; whether a driver for it is bundled is the adapter registry's
// concern. BigQuery ships dialect-only (query generation via `leapdiff
// render`) because no BigQuery driver is bundled.
func init() {
	Register(&Dialect{
		Name:          "duckdb",
		Quote:         `"`,
		DefaultSchema: "main",
		Qualification: QualifySchema,
		Placeholder:   PlaceholderQuestion,
	})
	Register(&Dialect{
		Name:          "postgres",
		Quote:         `"`,
		DefaultSchema: "public",
		Qualification: QualifySchema,
		Placeholder:   PlaceholderDollar,
	})
	Register(&Dialect{
		Name:          "sqlite",
		Quote:         `"`,
		DefaultSchema: "main",
		Qualification: QualifySchema,
		Placeholder:   PlaceholderQuestion,
	})
	Register(&Dialect{
		Name:          "mysql",
		Quote:         "`",
		Qualification: QualifySchema,
		Placeholder:   PlaceholderQuestion,
	})
	Register(&Dialect{
		Name:          "bigquery",
		Quote:         "`",
		Qualification: QualifyProject,
		Placeholder:   PlaceholderQuestion,
	})
}
