package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/overhangs/internal/config"
	"github.com/specialistvlad/overhangs/internal/digest"
	"github.com/specialistvlad/overhangs/internal/overhang"
	"github.com/specialistvlad/overhangs/internal/pathgraph"
	"golang.org/x/sync/errgroup"
)

// AssignmentReport lists the syntax parts found in one plasmid.
type AssignmentReport struct {
	Plasmid     string
	Syntax      string
	Enzymes     []string
	Assignments []digest.PartAssignment
}

// syntaxGraph builds the overhang graph of a declared syntax.
func syntaxGraph(ctx context.Context, s *config.Syntax) *pathgraph.Syntax {
	parts := make([]pathgraph.Part, 0, len(s.Parts))
	for _, p := range s.Parts {
		parts = append(parts, pathgraph.Part{
			Name:  p.Name,
			Left:  overhang.Normalize(p.LeftOverhang),
			Right: overhang.Normalize(p.RightOverhang),
		})
	}
	return pathgraph.NewSyntax(ctx, parts)
}

// Assign digests one plasmid and matches its fragments against its syntax.
func (a *App) Assign(ctx context.Context, name string) (*AssignmentReport, error) {
	if a.model == nil {
		return nil, errors.New("configuration is not loaded")
	}
	p, ok := a.model.Plasmids[name]
	if !ok {
		return nil, fmt.Errorf("plasmid '%s': %w", name, ErrNotFound)
	}
	s, err := a.model.SyntaxFor(p)
	if err != nil {
		return nil, err
	}
	ctx = a.withLogger(ctx)
	return a.assign(ctx, p, syntaxGraph(ctx, s))
}

func (a *App) assign(ctx context.Context, p *config.Plasmid, syntax *pathgraph.Syntax) (*AssignmentReport, error) {
	enzymes, err := a.enzymes.Resolve(p.Enzymes)
	if err != nil {
		return nil, fmt.Errorf("plasmid '%s': %w", p.Name, err)
	}

	features := make([]digest.Feature, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, digest.Feature{Name: f.Name, Start: f.Start, End: f.End})
	}

	seq := digest.SequenceData{Sequence: p.Sequence, Circular: p.Circular, Features: features}
	assignments, err := a.assigner.Assign(ctx, seq, enzymes, syntax)
	if err != nil {
		return nil, fmt.Errorf("plasmid '%s': %w", p.Name, err)
	}
	a.logger.Debug("Plasmid assigned.", "plasmid", p.Name, "assignments", len(assignments))

	names := make([]string, 0, len(enzymes))
	for _, e := range enzymes {
		names = append(names, e.Name)
	}
	return &AssignmentReport{
		Plasmid:     p.Name,
		Syntax:      p.Syntax,
		Enzymes:     names,
		Assignments: assignments,
	}, nil
}

// RunAssign assigns the named plasmids, or all of them when names is empty,
// with up to Config.Workers plasmids in flight. Reports are rendered in name
// order once every plasmid is done; the first failure cancels the rest.
func (a *App) RunAssign(ctx context.Context, names []string) error {
	if a.model == nil {
		return errors.New("configuration is not loaded")
	}
	names, err := selectNames("plasmid", names, a.model.PlasmidNames())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.logger.Warn("No plasmids declared, nothing to assign.")
	}
	ctx = a.withLogger(ctx)

	// Syntax graphs are only read while assigning, so one graph per syntax
	// is shared by all workers.
	graphs := make(map[string]*pathgraph.Syntax)
	plasmids := make([]*config.Plasmid, len(names))
	for i, n := range names {
		p := a.model.Plasmids[n]
		s, err := a.model.SyntaxFor(p)
		if err != nil {
			return err
		}
		if _, ok := graphs[s.Name]; !ok {
			graphs[s.Name] = syntaxGraph(ctx, s)
		}
		plasmids[i] = p
	}

	reports := make([]*AssignmentReport, len(plasmids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, p := range plasmids {
		g.Go(func() error {
			r, err := a.assign(gctx, p, graphs[p.Syntax])
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Debug("All plasmids assigned.", "count", len(reports), "workers", a.config.Workers)
	return a.render(func(r renderer) error { return r.assignments(reports) })
}
