package factory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/registry"
)

func testRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(&registry.Definition{
		Kind:      "createText",
		Category:  "create",
		Deletable: true,
		Handles: []registry.Handle{
			{ID: "output", Kind: registry.SourceHandle, Position: "right"},
		},
		Defaults:   map[string]any{"text": ""},
		FieldTypes: map[string]cty.Type{"text": cty.String},
	})
	return reg
}

func newFactory(t *testing.T, reg *registry.Registry, opts Options) *Factory {
	t.Helper()
	return New(context.Background(), reg, opts)
}

func TestCreateNode_RegistryDefinition(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{})

	node, err := f.CreateNode("createText", graph.Position{X: 10, Y: 20}, map[string]any{"text": "hello"})
	require.NoError(t, err)
	require.NotNil(t, node)

	assert.Equal(t, "createText", node.Kind)
	assert.Equal(t, "hello", node.Payload["text"])
	assert.True(t, node.Deletable)
	assert.Equal(t, graph.Position{X: 10, Y: 20}, node.Position)
	assert.EqualValues(t, 1, f.Metrics().RegistryHits)
}

func TestCreateNode_DeterministicIdentity(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{})

	first, err := f.CreateNode("createText", graph.Position{X: 1, Y: 2}, nil)
	require.NoError(t, err)
	second, err := f.CreateNode("createText", graph.Position{X: 1, Y: 2}, nil)
	require.NoError(t, err)
	moved, err := f.CreateNode("createText", graph.Position{X: 3, Y: 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, moved.ID)
}

func TestCreateNode_CacheHitReturnsEqualCopy(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{EnableCaching: true})

	first, err := f.CreateNode("createText", graph.Position{X: 1, Y: 2}, map[string]any{"text": "x"})
	require.NoError(t, err)
	second, err := f.CreateNode("createText", graph.Position{X: 1, Y: 2}, map[string]any{"text": "x"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.Metrics().CacheHits)
	assert.NotSame(t, first, second, "a cache hit must hand out a copy")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached result differs (-first +second):\n%s", diff)
	}

	// Mutating one result must not bleed into future hits.
	second.Payload["text"] = "mutated"
	third, err := f.CreateNode("createText", graph.Position{X: 1, Y: 2}, map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", third.Payload["text"])
}

func TestCreateNode_FallsBackToBuiltinTable(t *testing.T) {
	t.Parallel()
	// testNode is only in the built-in table, not the registry.
	f := newFactory(t, testRegistry(), Options{Strategy: RegistryFirst})

	node, err := f.CreateNode("testNode", graph.Position{}, nil)
	require.NoError(t, err)
	require.NotNil(t, node)

	assert.Equal(t, "testNode", node.Kind)
	m := f.Metrics()
	assert.EqualValues(t, 1, m.Fallbacks)
	assert.EqualValues(t, 1, m.DefaultHits)
	assert.Zero(t, m.RegistryHits)
}

func TestCreateNode_PinnedSourceFailsHard(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		strategy Strategy
		kind     string
	}{
		{name: "registry only misses builtin kind", strategy: RegistryOnly, kind: "testNode"},
		{name: "defaults only misses registry kind", strategy: DefaultsOnly, kind: "createUnknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFactory(t, testRegistry(), Options{Strategy: tc.strategy, FallbackBehavior: Throw})

			node, err := f.CreateNode(tc.kind, graph.Position{}, nil)
			assert.Nil(t, node)
			assert.ErrorIs(t, err, registry.ErrUnknownKind)
			assert.EqualValues(t, 1, f.Metrics().Errors)
		})
	}
}

func TestCreateNode_WarnPolicyReturnsNilNil(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{})

	node, err := f.CreateNode("noSuchKind", graph.Position{}, nil)
	assert.Nil(t, node)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, f.Metrics().Errors)
}

func TestCreateNode_InvalidOverrideRejected(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{FallbackBehavior: Throw})

	node, err := f.CreateNode("createText", graph.Position{}, map[string]any{"text": 42})
	assert.Nil(t, node)
	assert.ErrorIs(t, err, registry.ErrInvalidOverride)
	assert.EqualValues(t, 1, f.Metrics().Errors)

	// Undeclared fields stay free-form.
	node, err = f.CreateNode("createText", graph.Position{}, map[string]any{"custom": 42})
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, 42, node.Payload["custom"])
}

func TestCopyNode(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{})

	original := &graph.Node{
		ID:       "createText-abc",
		Kind:     "createText",
		Position: graph.Position{X: 5, Y: 5},
		Payload:  map[string]any{"nested": map[string]any{"k": "v"}},
	}

	first := f.CopyNode(original, graph.Position{X: 20, Y: 20})
	second := f.CopyNode(original, graph.Position{X: 20, Y: 20})

	require.NotNil(t, first)
	assert.NotEqual(t, original.ID, first.ID)
	assert.NotEqual(t, first.ID, second.ID, "every copy gets a fresh identity")
	assert.Equal(t, graph.Position{X: 25, Y: 25}, first.Position)

	first.Payload["nested"].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", original.Payload["nested"].(map[string]any)["k"])

	assert.Nil(t, f.CopyNode(nil, graph.Position{}))
}

func TestToggleDisplayMode(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{})

	original := &graph.Node{ID: "n1", ShowDetail: false}
	toggled := f.ToggleDisplayMode(original)

	assert.True(t, toggled.ShowDetail)
	assert.False(t, original.ShowDetail, "original is untouched")
	assert.False(t, f.ToggleDisplayMode(toggled).ShowDetail)
	assert.Nil(t, f.ToggleDisplayMode(nil))
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	f := newFactory(t, testRegistry(), Options{EnableCaching: true, CacheCapacity: 2})

	for i := 0; i < 3; i++ {
		_, err := f.CreateNode("createText", graph.Position{X: float64(i)}, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.CacheLen())

	// The oldest entry (X=0) was evicted; re-creating it misses.
	_, err := f.CreateNode("createText", graph.Position{X: 0}, nil)
	require.NoError(t, err)
	assert.Zero(t, f.Metrics().CacheHits)

	// The newest entry (X=2) survives.
	_, err = f.CreateNode("createText", graph.Position{X: 2}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.Metrics().CacheHits)
}

func TestStrategyAndFallbackStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "registry-first", RegistryFirst.String())
	assert.Equal(t, "defaults-first", DefaultsFirst.String())
	assert.Equal(t, "registry-only", RegistryOnly.String())
	assert.Equal(t, "defaults-only", DefaultsOnly.String())
	assert.Equal(t, "registry-first", fmt.Sprint(RegistryFirst))
}
