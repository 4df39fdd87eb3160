// Package config provides configuration management for the leapdiff CLI.
//
// Configuration is layered: defaults < leapdiff.yaml < LEAPDIFF_* env vars
// < command-line flags. Connection settings can be declared per database
// type under targets, with top-level (flag/env) values overriding them.
package config

import (
	"github.com/leapstack-labs/leapdiff/pkg/adapter"
)

// TargetConfig holds connection settings for one database type.
type TargetConfig struct {
	// Path is the database file for file-based backends (duckdb, sqlite).
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Project  string            `koanf:"project"`
	Options  map[string]string `koanf:"options"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose        bool   `koanf:"verbose"`
	OutputFormat   string `koanf:"format"`
	DefaultProject string `koanf:"default_project"`

	// Targets holds per-database-type connection settings from the
	// config file, keyed by dialect name.
	Targets map[string]TargetConfig `koanf:"targets"`

	// Override carries top-level connection settings from flags and env
	// vars; non-zero fields win over the matching target entry.
	Override TargetConfig `koanf:"-"`
}

// DefaultOutput is the default output format: one JSON record per line.
const DefaultOutput = "jsonl"

// TargetFor returns the effective connection settings for a database type:
// the configured target merged with flag/env overrides.
func (c *Config) TargetFor(dbType string) TargetConfig {
	t := c.Targets[dbType]
	o := c.Override

	if o.Path != "" {
		t.Path = o.Path
	}
	if o.Host != "" {
		t.Host = o.Host
	}
	if o.Port != 0 {
		t.Port = o.Port
	}
	if o.Database != "" {
		t.Database = o.Database
	}
	if o.User != "" {
		t.User = o.User
	}
	if o.Password != "" {
		t.Password = o.Password
	}
	if o.Schema != "" {
		t.Schema = o.Schema
	}
	if o.Project != "" {
		t.Project = o.Project
	}
	if len(o.Options) > 0 {
		if t.Options == nil {
			t.Options = make(map[string]string, len(o.Options))
		}
		for k, v := range o.Options {
			t.Options[k] = v
		}
	}
	return t
}

// AdapterConfig builds the adapter connection config for a database type.
func (c *Config) AdapterConfig(dbType string) adapter.Config {
	t := c.TargetFor(dbType)
	project := t.Project
	if project == "" {
		project = c.DefaultProject
	}
	return adapter.Config{
		Type:     dbType,
		Path:     t.Path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Project:  project,
		Options:  t.Options,
	}
}
