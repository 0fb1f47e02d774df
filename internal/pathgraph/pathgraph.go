// Package pathgraph turns user-declared overhang paths into the part graph
// the alignment works on, and breaks the cycle that a circular assembly
// produces.
package pathgraph

import (
	"context"

	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/dag"
	"github.com/specialistvlad/overhangs/internal/overhang"
)

// Build returns a graph whose nodes are the EdgeKeys of every consecutive
// overhang pair in paths, with an edge A -> B whenever B's left overhang
// equals A's right overhang. Nodes keep first-appearance order.
//
// The adjacency pass compares every ordered pair of nodes, which is fine for
// the low hundreds of parts a syntax is expected to have.
func Build(ctx context.Context, paths []overhang.Path) *dag.Graph {
	logger := ctxlog.FromContext(ctx)
	g := dag.New()

	var keys []overhang.EdgeKey
	seen := make(map[overhang.EdgeKey]struct{})
	for _, p := range paths {
		for _, k := range p.Edges() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
			g.AddNode(string(k))
		}
	}

	for _, a := range keys {
		_, aRight, ok := a.Split()
		if !ok {
			continue
		}
		for _, b := range keys {
			bLeft, _, ok := b.Split()
			if !ok || a == b || bLeft != aRight {
				continue
			}
			// Both nodes exist and differ, AddEdge cannot fail here.
			_ = g.AddEdge(string(a), string(b))
		}
	}

	logger.Debug("Path graph built.", "paths", len(paths), "nodes", g.Len(), "edges", g.EdgeCount())
	return g
}

// CutNode returns the EdgeKey formed by the first two overhangs of the first
// path: the fixed starting part of a circular assembly. ok is false when
// there is no such pair.
func CutNode(paths []overhang.Path) (overhang.EdgeKey, bool) {
	if len(paths) == 0 || len(paths[0]) < 2 {
		return "", false
	}
	return overhang.EdgeKeyOf(paths[0][0], paths[0][1]), true
}

// BreakCycle returns a copy of g with every edge into cut removed. Every
// cycle of a well-formed circular assembly passes through its start part, so
// that cut alone leaves the copy acyclic. Any cycle that survives is broken
// the same way at the node where a depth-first search in insertion order
// first closes it, with a warning. g itself is never modified. A cut that is
// not a node of g only triggers the second step.
func BreakCycle(ctx context.Context, g *dag.Graph, cut overhang.EdgeKey) *dag.Graph {
	logger := ctxlog.FromContext(ctx)
	work := g.Clone()
	if removed, err := work.CutIncoming(string(cut)); err != nil {
		logger.Debug("Cut node not in graph, nothing to break.", "cut", cut)
	} else {
		logger.Debug("Cycle broken at start part.", "cut", cut, "edges_removed", removed)
	}

	// Each pass removes at least the edge closing the cycle found.
	for {
		id, ok := work.FindCycle()
		if !ok {
			break
		}
		removed, _ := work.CutIncoming(id)
		logger.Warn("Cycle outside the start part broken.", "cut", cut, "node", id, "edges_removed", removed)
	}
	return work
}
