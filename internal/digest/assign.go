package digest

import (
	"context"
	"fmt"

	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/overhang"
	"github.com/specialistvlad/overhangs/internal/pathgraph"
)

// SequenceData is a candidate plasmid or linear construct.
type SequenceData struct {
	Sequence string
	Circular bool
	Features []Feature
}

// PartAssignment reports one fragment that matches the syntax.
type PartAssignment struct {
	LeftOverhang   overhang.Overhang `json:"left_overhang"`
	RightOverhang  overhang.Overhang `json:"right_overhang"`
	LongestFeature *Feature          `json:"longest_feature,omitempty"`
	// Parts names the syntax parts traversed from left to right.
	Parts  []string `json:"parts"`
	Start  int      `json:"start"`
	Length int      `json:"length"`
}

// Assigner matches digestion fragments against a syntax graph.
type Assigner struct {
	digester Digester
}

// NewAssigner returns an Assigner that digests with d. A nil d uses
// Restriction.
func NewAssigner(d Digester) *Assigner {
	if d == nil {
		d = Restriction{}
	}
	return &Assigner{digester: d}
}

// Assign digests seq with enzymes and returns one PartAssignment per
// fragment that can be read as a run of syntax parts. A sequence and its
// reverse complement produce the same set of overhang pairs. No sites or no
// match gives an empty result, not an error.
func (a *Assigner) Assign(ctx context.Context, seq SequenceData, enzymes []Enzyme, syntax *pathgraph.Syntax) ([]PartAssignment, error) {
	logger := ctxlog.FromContext(ctx)

	raw, err := a.digester.Digest(ctx, seq.Sequence, seq.Circular, enzymes)
	if err != nil {
		return nil, fmt.Errorf("digesting sequence: %w", err)
	}

	working := make([]Fragment, 0, 2*len(raw))
	for _, r := range raw {
		working = append(working, normalize(r))
	}
	for i := range raw {
		working = append(working, working[i].mirror())
	}

	n := len(seq.Sequence)
	for i := range working {
		working[i].LongestFeature = longestFeature(working[i], seq.Features, n, seq.Circular)
	}

	type fragmentKey struct {
		start, length int
		left, right   End
	}
	seen := make(map[fragmentKey]struct{})
	var out []PartAssignment
	for _, f := range working {
		if !f.canonical() {
			continue
		}
		if !syntax.HasOverhang(f.Left.Overhang) || !syntax.HasOverhang(f.Right.Overhang) {
			continue
		}
		// A fragment whose overhangs are mutual reverse complements is its
		// own mirror.
		k := fragmentKey{start: f.Start, length: f.Length, left: f.Left, right: f.Right}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		parts, ok := syntax.Route(f.Left.Overhang, f.Right.Overhang)
		if !ok {
			continue
		}
		out = append(out, PartAssignment{
			LeftOverhang:   f.Left.Overhang,
			RightOverhang:  f.Right.Overhang,
			LongestFeature: f.LongestFeature,
			Parts:          parts,
			Start:          f.Start,
			Length:         f.Length,
		})
	}

	logger.Debug("Digestion matched.",
		"fragments", len(raw),
		"assignments", len(out),
	)
	return out, nil
}
