package orbitstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhagemann/symred/pkg/task"
)

func testStoreBehavior(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Lookup(ctx, task.Mapping{0, 1, 2})
	require.NoError(t, err)
	assert.False(t, ok, "empty store must miss")

	idx, isNew, err := store.Insert(ctx, task.Mapping{0, 1, 2})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 0, idx)

	idx, isNew, err = store.Insert(ctx, task.Mapping{1, 1, 1})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 1, idx)

	idx, isNew, err = store.Insert(ctx, task.Mapping{0, 1, 2})
	require.NoError(t, err)
	assert.False(t, isNew, "duplicate insert must be idempotent")
	assert.Equal(t, 0, idx)

	idx, ok, err = store.Lookup(ctx, task.Mapping{1, 1, 1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []int{0, 1, 2}, records[0].Mapping)
	assert.Equal(t, []int{1, 1, 1}, records[1].Mapping)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStoreBehavior(t, store)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, "batch-a")
	require.NoError(t, err)
	testStoreBehavior(t, store)
	require.NoError(t, store.Close())

	// Reopening the same batch sees the persisted records.
	reopened, err := NewFileStore(dir, "batch-a")
	require.NoError(t, err)
	defer reopened.Close()

	idx, ok, err := reopened.Lookup(context.Background(), task.Mapping{1, 1, 1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	// A different batch is empty.
	other, err := NewFileStore(dir, "batch-b")
	require.NoError(t, err)
	defer other.Close()
	_, ok, err = other.Lookup(context.Background(), task.Mapping{1, 1, 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClosedStoreFails(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	_, _, err := store.Insert(context.Background(), task.Mapping{0})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSeedAndDrain(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	orbits := task.NewOrbits()
	orbits.Insert(task.Mapping{0, 0})
	orbits.Insert(task.Mapping{0, 1})
	require.NoError(t, Drain(ctx, store, orbits))

	seeded := task.NewOrbits()
	require.NoError(t, Seed(ctx, store, seeded))
	assert.Equal(t, 2, seeded.Len())

	idx, ok := seeded.Lookup(task.Mapping{0, 1})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestNewBatchIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewBatchID(), NewBatchID())
}
