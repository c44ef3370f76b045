package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_ApplyActivation(t *testing.T) {
	t.Parallel()
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.ApplyActivation(ctx, map[string]bool{"a": true, "b": false}))

	active, ok := s.Activation(ctx, "a")
	require.True(t, ok)
	assert.True(t, active)

	active, ok = s.Activation(ctx, "b")
	require.True(t, ok)
	assert.False(t, active)

	_, ok = s.Activation(ctx, "ghost")
	assert.False(t, ok)

	assert.Equal(t, map[string]bool{"a": true, "b": false}, s.Snapshot(ctx))
}

func TestMemStore_EmptyBatchIsNotCounted(t *testing.T) {
	t.Parallel()
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.ApplyActivation(ctx, nil))
	require.NoError(t, s.ApplyActivation(ctx, map[string]bool{}))

	assert.Zero(t, s.Batches())
}

func TestMemStore_Counters(t *testing.T) {
	t.Parallel()
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.ApplyActivation(ctx, map[string]bool{"a": true}))
	require.NoError(t, s.ApplyActivation(ctx, map[string]bool{"a": false, "b": true}))

	assert.EqualValues(t, 2, s.Batches())
	assert.EqualValues(t, 2, s.CommitsFor("a"))
	assert.EqualValues(t, 1, s.CommitsFor("b"))
	assert.Zero(t, s.CommitsFor("ghost"))
}

func TestMemStore_ConcurrentBatches(t *testing.T) {
	t.Parallel()
	s := NewMemStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(active bool) {
			defer wg.Done()
			_ = s.ApplyActivation(ctx, map[string]bool{"a": active})
		}(i%2 == 0)
	}
	wg.Wait()

	assert.EqualValues(t, 16, s.Batches())
	assert.EqualValues(t, 16, s.CommitsFor("a"))
	_, ok := s.Activation(ctx, "a")
	assert.True(t, ok)
}
