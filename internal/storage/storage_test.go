package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns both implementations so the contract tests run
// against each.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_KVRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "slot")
			require.NoError(t, err)
			assert.False(t, ok, "missing key should report not found")

			require.NoError(t, store.Set(ctx, "slot", `["a","b"]`))
			value, ok, err := store.Get(ctx, "slot")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["a","b"]`, value)

			// Overwrite replaces the previous value.
			require.NoError(t, store.Set(ctx, "slot", `[]`))
			value, _, err = store.Get(ctx, "slot")
			require.NoError(t, err)
			assert.Equal(t, `[]`, value)

			require.NoError(t, store.Delete(ctx, "slot"))
			_, ok, err = store.Get(ctx, "slot")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting a missing key is not an error.
			require.NoError(t, store.Delete(ctx, "slot"))
		})
	}
}

func TestStore_ExecutionLog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			first := &Execution{CommandID: "nav-dashboard", ExecutedUnixMs: 1000}
			second := &Execution{CommandID: "create-offer", ExecutedUnixMs: 2000}
			third := &Execution{CommandID: "nav-dashboard", ExecutedUnixMs: 3000}

			require.NoError(t, store.AppendExecution(ctx, first))
			require.NoError(t, store.AppendExecution(ctx, second))
			require.NoError(t, store.AppendExecution(ctx, third))

			// Execution IDs are generated when absent.
			assert.NotEmpty(t, first.ExecutionID)
			assert.NotEqual(t, first.ExecutionID, second.ExecutionID)

			all, err := store.QueryExecutions(ctx, ExecutionQuery{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "nav-dashboard", all[0].CommandID, "most recent first")
			assert.EqualValues(t, 3000, all[0].ExecutedUnixMs)

			byCmd, err := store.QueryExecutions(ctx, ExecutionQuery{CommandID: "nav-dashboard"})
			require.NoError(t, err)
			assert.Len(t, byCmd, 2)

			limited, err := store.QueryExecutions(ctx, ExecutionQuery{Limit: 1})
			require.NoError(t, err)
			assert.Len(t, limited, 1)

			counts, err := store.CountExecutions(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"nav-dashboard": 2, "create-offer": 1}, counts)
		})
	}
}

func TestStore_AppendExecutionValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.AppendExecution(ctx, nil))
			assert.Error(t, store.AppendExecution(ctx, &Execution{}))
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "slot", "value"))
	require.NoError(t, store.AppendExecution(ctx, &Execution{CommandID: "a"}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	counts, err := reopened.CountExecutions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["a"])
}

func TestSQLiteStore_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
