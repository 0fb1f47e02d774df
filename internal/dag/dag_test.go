package dag

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T, ids []string, edges ...[2]string) *Graph {
	t.Helper()
	g := New()
	for _, id := range ids {
		g.AddNode(id)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func hasEdge(g *Graph, fromID, toID string) bool {
	dependents, err := g.Dependents(fromID)
	return err == nil && slices.Contains(dependents, toID)
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"})

		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "b")) // duplicate is a no-op

		assert.True(t, hasEdge(g, "a", "b"))
		assert.False(t, hasEdge(g, "b", "a"))
		assert.Equal(t, 1, g.EdgeCount())

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"})

		err := g.AddEdge("dne", "a")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "source node")

		err = g.AddEdge("a", "dne")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "destination node")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Dependencies("dne")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		_, err = g.Dependents("dne")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})
}

func TestSourcesAndSinks(t *testing.T) {
	g := newGraph(t, []string{"a", "b", "c", "d"},
		[2]string{"a", "b"},
		[2]string{"a", "c"},
		[2]string{"b", "c"},
	)

	assert.Equal(t, []string{"a", "d"}, g.Sources())
	assert.Equal(t, []string{"c", "d"}, g.Sinks())
}

func TestCutIncoming(t *testing.T) {
	g := newGraph(t, []string{"a", "b", "c"},
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "a"},
		[2]string{"b", "a"},
	)
	require.Error(t, g.DetectCycles())

	removed, err := g.CutIncoming("a")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoError(t, g.DetectCycles())

	// Other edges are untouched.
	assert.True(t, hasEdge(g, "a", "b"))
	assert.True(t, hasEdge(g, "b", "c"))

	// Idempotent.
	removed, err = g.CutIncoming("a")
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 2, g.EdgeCount())

	_, err = g.CutIncoming("dne")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestClone(t *testing.T) {
	g := newGraph(t, []string{"a", "b"}, [2]string{"a", "b"})
	c := g.Clone()

	require.NoError(t, c.AddEdge("b", "a"))
	c.AddNode("z")

	assert.False(t, hasEdge(g, "b", "a"), "clone must not share edges")
	assert.False(t, g.HasNode("z"), "clone must not share nodes")
	assert.Equal(t, []string{"a", "b", "z"}, c.Nodes())
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c"})
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c", "d"},
			[2]string{"a", "b"},
			[2]string{"b", "c"},
			[2]string{"a", "c"}, // Transitive edge
			[2]string{"c", "d"},
		)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"},
			[2]string{"a", "b"},
			[2]string{"b", "a"},
		)
		err := g.DetectCycles()
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "cycle detected")

		id, ok := g.FindCycle()
		assert.True(t, ok)
		assert.Equal(t, "a", id)
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "x", "y", "z"},
			[2]string{"a", "b"},
			[2]string{"x", "y"},
			[2]string{"y", "z"},
			[2]string{"z", "y"},
		)
		assert.ErrorIs(t, g.DetectCycles(), ErrCycle)

		id, ok := g.FindCycle()
		assert.True(t, ok)
		assert.Equal(t, "y", id)
	})

	t.Run("acyclic graph has no cycle node", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"}, [2]string{"a", "b"})
		_, ok := g.FindCycle()
		assert.False(t, ok)
	})
}

func TestGenerations(t *testing.T) {
	t.Run("diamond with a tail", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c", "d", "e"},
			[2]string{"a", "b"},
			[2]string{"a", "c"},
			[2]string{"b", "d"},
			[2]string{"c", "d"},
			[2]string{"a", "d"},
			[2]string{"d", "e"},
		)
		gens, err := g.Generations()
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a"}, {"b", "c"}, {"d"}, {"e"}}, gens)

		index := GenerationIndex(gens)
		assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 1, "d": 2, "e": 3}, index)
	})

	t.Run("empty graph", func(t *testing.T) {
		gens, err := New().Generations()
		require.NoError(t, err)
		assert.Empty(t, gens)
	})

	t.Run("cycle is reported", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c"},
			[2]string{"a", "b"},
			[2]string{"b", "c"},
			[2]string{"c", "b"},
		)
		_, err := g.Generations()
		assert.ErrorIs(t, err, ErrCycle)
	})
}

func TestShortestPath(t *testing.T) {
	g := newGraph(t, []string{"a", "b", "c", "d"},
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"a", "c"},
		[2]string{"c", "a"},
	)

	assert.Equal(t, []string{"a", "c"}, g.ShortestPath("a", "c"))
	assert.Equal(t, []string{"b", "c", "a"}, g.ShortestPath("b", "a"))
	assert.Equal(t, []string{"a"}, g.ShortestPath("a", "a"))
	assert.Nil(t, g.ShortestPath("a", "d"))
	assert.Nil(t, g.ShortestPath("a", "dne"))
}
