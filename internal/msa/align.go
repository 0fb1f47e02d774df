// Package msa lays the assembly paths of a part graph out as a gapped
// alignment matrix, finds which column ranges are genuine choices, and picks
// a small set of rows that still shows every choice.
//
// The pipeline is:
//
//	paths -> pathgraph.Build -> pathgraph.BreakCycle -> BuildRows -> Segments -> CoveringRows
//
// Every step is deterministic, so Align is safe to memoize on its input.
package msa

import (
	"context"

	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/overhang"
	"github.com/specialistvlad/overhangs/internal/pathgraph"
)

// Result is the full output of Align.
type Result struct {
	Generations [][]overhang.EdgeKey
	// Rows holds every enumerated path.
	Rows     []Row
	Segments []Segment
	// Selected is the covering subset of Rows meant for display.
	Selected  []Row
	Truncated bool
}

// Align runs the whole alignment pipeline on user paths. The first two
// overhangs of the first path name the start part where a circular assembly
// is cut open. Empty input gives an empty result.
func Align(ctx context.Context, paths []overhang.Path, opts ...Option) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	g := pathgraph.Build(ctx, paths)
	if cut, ok := pathgraph.CutNode(paths); ok {
		g = pathgraph.BreakCycle(ctx, g, cut)
	}

	m, err := BuildRows(ctx, g, opts...)
	if err != nil {
		return nil, err
	}

	segments := Segments(m.Rows)
	selected := CoveringRows(m.Rows, segments)

	logger.Debug("Alignment complete.",
		"rows", len(m.Rows),
		"segments", len(segments),
		"selected", len(selected),
		"truncated", m.Truncated,
	)
	return &Result{
		Generations: m.Generations,
		Rows:        m.Rows,
		Segments:    segments,
		Selected:    selected,
		Truncated:   m.Truncated,
	}, nil
}

// VariableSegments returns only the segments that differ between rows.
func (r *Result) VariableSegments() []Segment {
	var out []Segment
	for _, s := range r.Segments {
		if !s.Stable {
			out = append(out, s)
		}
	}
	return out
}
