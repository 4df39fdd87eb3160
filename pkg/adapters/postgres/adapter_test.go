package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapdiff/pkg/adapter"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      adapter.Config
		expected string
	}{
		{
			name:     "defaults",
			cfg:      adapter.Config{Database: "app"},
			expected: "host=localhost port=5432 dbname=app sslmode=disable",
		},
		{
			name: "full config",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "app",
				Username: "svc",
				Password: "secret",
			},
			expected: "host=db.internal port=5433 dbname=app sslmode=disable user=svc password=secret",
		},
		{
			name: "sslmode option",
			cfg: adapter.Config{
				Database: "app",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=localhost port=5432 dbname=app sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.cfg))
		})
	}
}

func TestDialect(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "postgres", a.Dialect().Name)
	assert.Equal(t, "$1", a.Dialect().FormatPlaceholder(1))
}
