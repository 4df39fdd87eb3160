package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leapdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "jsonl", cfg.OutputFormat)
	assert.Empty(t, cfg.Targets)
}

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfigFile(t, `
verbose: true
format: table
default_project: my-gcp-project
targets:
  duckdb:
    path: warehouse.db
  postgres:
    host: db.internal
    port: 5433
    database: app
    user: svc
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, "my-gcp-project", cfg.DefaultProject)
	assert.Equal(t, "warehouse.db", cfg.Targets["duckdb"].Path)
	assert.Equal(t, 5433, cfg.Targets["postgres"].Port)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Setenv("LEAPDIFF_FORMAT", "json")

	path := writeConfigFile(t, "format: table\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Setenv("LEAPDIFF_FORMAT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	require.NoError(t, flags.Set("format", "md"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "md", cfg.OutputFormat)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	t.Cleanup(ResetConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "table", "")

	// A flag left at its default must not override lower layers.
	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "jsonl", cfg.OutputFormat)
}

func TestLoadConfig_ConnectionFlagsBecomeOverride(t *testing.T) {
	t.Cleanup(ResetConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("path", "", "")
	flags.String("host", "", "")
	require.NoError(t, flags.Set("path", "other.db"))
	require.NoError(t, flags.Set("host", "flag-host"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Override.Path)
	assert.Equal(t, "flag-host", cfg.Override.Host)
}

func TestLoadConfig_EnvVarExpansion(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Setenv("DB_PASSWORD", "s3cret")

	path := writeConfigFile(t, `
targets:
  postgres:
    user: svc
    password: ${DB_PASSWORD}
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Targets["postgres"].Password)
}

func TestLoadConfig_EnvVarExpansion_Unset(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfigFile(t, `
targets:
  postgres:
    password: ${LEAPDIFF_TEST_UNSET_VAR}
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "${LEAPDIFF_TEST_UNSET_VAR}", cfg.Targets["postgres"].Password,
		"unset variables stay literal")
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfigFile(t, "format: xml\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestLoadConfig_UnknownTargetDialect(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfigFile(t, `
targets:
  oracle:
    host: x
`)

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown database type "oracle"`)
}

func TestGetCurrentConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}
