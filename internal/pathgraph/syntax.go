package pathgraph

import (
	"context"

	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/dag"
	"github.com/specialistvlad/overhangs/internal/overhang"
)

// Part is a declared syntax part: a named span between two overhangs.
type Part struct {
	Name  string
	Left  overhang.Overhang
	Right overhang.Overhang
}

// Syntax is the overhang graph of an assembly grammar. Its nodes are
// overhangs and every part is an edge from its left to its right overhang,
// so a digested fragment spanning several consecutive parts corresponds to a
// path between its two overhangs.
type Syntax struct {
	graph *dag.Graph
	// names lists the parts declared for each (left, right) edge.
	names map[[2]overhang.Overhang][]string
}

// twinPrefix marks the terminal copy of a node created when a cycle is
// broken. It cannot occur in an overhang.
const twinPrefix = "\x00end:"

// NewSyntax builds the syntax graph from parts. Parts sharing the same pair
// of overhangs are kept as alternatives on a single edge.
func NewSyntax(ctx context.Context, parts []Part) *Syntax {
	logger := ctxlog.FromContext(ctx)
	s := &Syntax{
		graph: dag.New(),
		names: make(map[[2]overhang.Overhang][]string),
	}
	for _, p := range parts {
		s.graph.AddNode(string(p.Left))
		s.graph.AddNode(string(p.Right))
		key := [2]overhang.Overhang{p.Left, p.Right}
		s.names[key] = append(s.names[key], p.Name)
		if p.Left != p.Right {
			// Both nodes were just added.
			_ = s.graph.AddEdge(string(p.Left), string(p.Right))
		}
	}
	logger.Debug("Syntax graph built.", "parts", len(parts), "overhangs", s.graph.Len())
	return s
}

// Graph exposes the underlying overhang graph.
func (s *Syntax) Graph() *dag.Graph { return s.graph }

// HasOverhang reports whether o is an overhang of any part.
func (s *Syntax) HasOverhang(o overhang.Overhang) bool {
	return s.graph.HasNode(string(o))
}

// Route finds the parts a fragment running from left to right represents. It
// returns one part name per traversed edge (the first declared part for that
// edge) and false when no route exists.
//
// When left equals right the fragment closes a cycle. The cycle is broken at
// left first: its incoming edges are moved onto a terminal twin, so the only
// routes found start at left and end after a full turn, and the same span is
// never reported in both directions.
func (s *Syntax) Route(left, right overhang.Overhang) ([]string, bool) {
	if !s.HasOverhang(left) || !s.HasOverhang(right) {
		return nil, false
	}

	if left != right {
		return s.namesAlong(s.graph.ShortestPath(string(left), string(right)))
	}

	if names := s.names[[2]overhang.Overhang{left, left}]; len(names) > 0 {
		return []string{names[0]}, true
	}

	work := s.graph.Clone()
	deps, _ := work.Dependencies(string(left))
	if _, err := work.CutIncoming(string(left)); err != nil {
		return nil, false
	}
	twin := twinPrefix + string(left)
	work.AddNode(twin)
	for _, d := range deps {
		_ = work.AddEdge(d, twin)
	}

	ids := work.ShortestPath(string(left), twin)
	if ids == nil {
		return nil, false
	}
	ids[len(ids)-1] = string(left)
	return s.namesAlong(ids)
}

func (s *Syntax) namesAlong(ids []string) ([]string, bool) {
	if ids == nil {
		return nil, false
	}
	names := make([]string, 0, len(ids))
	for i := 0; i+1 < len(ids); i++ {
		key := [2]overhang.Overhang{overhang.Overhang(ids[i]), overhang.Overhang(ids[i+1])}
		if n := s.names[key]; len(n) > 0 {
			names = append(names, n[0])
		}
	}
	return names, true
}
