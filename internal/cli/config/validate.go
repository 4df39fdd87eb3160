package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

// outputFormats are the accepted values for the format option.
var outputFormats = []string{"jsonl", "json", "table", "md"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	valid := false
	for _, f := range outputFormats {
		if c.OutputFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format %q; must be one of: %s",
			c.OutputFormat, strings.Join(outputFormats, ", "))
	}

	for name := range c.Targets {
		if _, ok := dialect.Get(name); !ok {
			return fmt.Errorf("unknown database type %q in targets; known dialects: %s",
				name, strings.Join(dialect.List(), ", "))
		}
	}
	return nil
}
