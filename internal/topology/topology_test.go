package topology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

func mustEdge(t *testing.T, s graph.Snapshot, source, sourceHandle, target, targetHandle string) graph.Snapshot {
	t.Helper()
	out, err := s.AddEdge(&graph.Edge{
		ID:           graph.ConnectionID(source, sourceHandle, target, targetHandle),
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: targetHandle,
	})
	require.NoError(t, err)
	return out
}

// chain builds h -> a -> b -> c on primary handles.
func chain(t *testing.T) graph.Snapshot {
	t.Helper()
	var s graph.Snapshot
	for _, id := range []string{"h", "a", "b", "c"} {
		s = s.AddNode(&graph.Node{ID: id})
	}
	s = mustEdge(t, s, "h", "output", "a", "input")
	s = mustEdge(t, s, "a", "output", "b", "input")
	s = mustEdge(t, s, "b", "output", "c", "input")
	return s
}

func TestFingerprint_IgnoresPayload(t *testing.T) {
	t.Parallel()
	s := chain(t)
	before := Fingerprint(s)

	s, err := s.UpdateNodePayload("a", map[string]any{"text": "changed"})
	require.NoError(t, err)

	assert.Equal(t, before, Fingerprint(s))
}

func TestFingerprint_ChangesWithTopology(t *testing.T) {
	t.Parallel()
	s := chain(t)
	before := Fingerprint(s)

	assert.NotEqual(t, before, Fingerprint(s.RemoveNode("c")))

	s2 := s.AddNode(&graph.Node{ID: "d"})
	assert.NotEqual(t, before, Fingerprint(s2))
}

func TestCache_ReusesIndexForIdenticalTopology(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewCache()
	s := chain(t)

	first := cache.Rebuild(ctx, s)

	// Same topology, different payload: the path table must be reused.
	edited, err := s.UpdateNodePayload("b", map[string]any{"x": 1})
	require.NoError(t, err)
	second := cache.Rebuild(ctx, edited)

	assert.Same(t, first, second)
	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	ds1, err := first.Downstream("h")
	require.NoError(t, err)
	ds2, err := second.Downstream("h")
	require.NoError(t, err)
	assert.Equal(t, ds1, ds2)
}

func TestCache_RebuildsOnTopologyChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewCache()
	s := chain(t)

	first := cache.Rebuild(ctx, s)
	second := cache.Rebuild(ctx, s.RemoveNode("c"))

	assert.NotSame(t, first, second)
}

func TestIndex_HeadsIgnoreAuxiliaryEdges(t *testing.T) {
	t.Parallel()
	var s graph.Snapshot
	s = s.AddNode(&graph.Node{ID: "trigger"})
	s = s.AddNode(&graph.Node{ID: "text"})
	s = s.AddNode(&graph.Node{ID: "view"})
	// trigger activates text through an auxiliary handle; text stays a head.
	s = mustEdge(t, s, "trigger", "output", "text", "aux-activate")
	s = mustEdge(t, s, "text", "output", "view", "input")

	idx := NewCache().Rebuild(context.Background(), s)

	assert.Equal(t, []string{"text", "trigger"}, idx.Heads())
}

func TestIndex_DepthIsShortestHeadPath(t *testing.T) {
	t.Parallel()
	// Diamond with a shortcut: h -> a -> c and h -> c.
	var s graph.Snapshot
	for _, id := range []string{"h", "a", "c"} {
		s = s.AddNode(&graph.Node{ID: id})
	}
	s = mustEdge(t, s, "h", "output", "a", "input")
	s = mustEdge(t, s, "a", "output", "c", "input")
	s = mustEdge(t, s, "h", "out2", "c", "input2")

	idx := NewCache().Rebuild(context.Background(), s)

	testCases := []struct {
		id   string
		want int
	}{
		{id: "h", want: 0},
		{id: "a", want: 1},
		{id: "c", want: 1},
	}
	for _, tc := range testCases {
		d, ok := idx.Depth(tc.id)
		require.True(t, ok, "depth for %s", tc.id)
		assert.Equal(t, tc.want, d, "depth for %s", tc.id)
	}
}

func TestIndex_DownstreamOrderedByDepth(t *testing.T) {
	t.Parallel()
	idx := NewCache().Rebuild(context.Background(), chain(t))

	ds, err := idx.Downstream("h")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ds)

	mid, err := idx.DownstreamOf("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, mid)
}

func TestIndex_StaleLookupsError(t *testing.T) {
	t.Parallel()
	idx := NewCache().Rebuild(context.Background(), chain(t))

	_, err := idx.Downstream("ghost")
	assert.ErrorIs(t, err, ErrStaleTopology)

	_, err = idx.DownstreamOf("ghost")
	assert.ErrorIs(t, err, ErrStaleTopology)

	_, err = idx.Children("ghost")
	assert.ErrorIs(t, err, ErrStaleTopology)
}

func TestIndex_CycleDoesNotRecurseForever(t *testing.T) {
	t.Parallel()
	// Edge validity prevents cycles upstream; the traversal still guards.
	var s graph.Snapshot
	for _, id := range []string{"a", "b", "c"} {
		s = s.AddNode(&graph.Node{ID: id})
	}
	s = mustEdge(t, s, "a", "output", "b", "input")
	s = mustEdge(t, s, "b", "output", "c", "input")
	s = mustEdge(t, s, "c", "output", "a", "input")

	idx := NewCache().Rebuild(context.Background(), s)

	ds, err := idx.DownstreamOf("a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, ds)
}
