package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdiff/pkg/dialect"
)

type stubAdapter struct {
	BaseSQLAdapter
	logger *slog.Logger
}

func (a *stubAdapter) Connect(context.Context, Config) error { return nil }
func (a *stubAdapter) ListColumns(context.Context, string) ([]string, error) {
	return []string{"id"}, nil
}
func (a *stubAdapter) Dialect() *dialect.Dialect {
	d, _ := dialect.Get("duckdb")
	return d
}

func TestRegistry(t *testing.T) {
	Register("stub", func(logger *slog.Logger) Adapter {
		return &stubAdapter{logger: logger}
	})

	t.Run("registered factory is retrievable", func(t *testing.T) {
		factory, ok := Get("stub")
		require.True(t, ok)
		assert.NotNil(t, factory(nil))
		assert.True(t, IsRegistered("stub"))
	})

	t.Run("NewAdapter builds the adapter", func(t *testing.T) {
		a, err := NewAdapter(Config{Type: "stub"}, slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		assert.IsType(t, &stubAdapter{}, a)
	})

	t.Run("list is sorted", func(t *testing.T) {
		assert.IsIncreasing(t, ListAdapters())
		assert.Contains(t, ListAdapters(), "stub")
	})
}

func TestNewAdapter_Errors(t *testing.T) {
	t.Run("empty type", func(t *testing.T) {
		_, err := NewAdapter(Config{}, nil)
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewAdapter(Config{Type: "oracle"}, nil)
		require.Error(t, err)

		var unknownErr *UnknownAdapterError
		require.True(t, errors.As(err, &unknownErr), "expected *UnknownAdapterError, got %T", err)
		assert.Equal(t, "oracle", unknownErr.Type)
		assert.Contains(t, err.Error(), "Available adapters")
	})
}
