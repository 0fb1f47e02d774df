package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/overhangs/internal/msa"
	"github.com/specialistvlad/overhangs/internal/overhang"
)

// AlignmentReport is the alignment of one assembly.
type AlignmentReport struct {
	Assembly string
	Result   *msa.Result
}

// Align runs the alignment pipeline on one assembly.
func (a *App) Align(ctx context.Context, name string) (*AlignmentReport, error) {
	if a.model == nil {
		return nil, errors.New("configuration is not loaded")
	}
	asm, ok := a.model.Assemblies[name]
	if !ok {
		return nil, fmt.Errorf("assembly '%s': %w", name, ErrNotFound)
	}

	paths := make([]overhang.Path, 0, len(asm.Paths))
	for _, raw := range asm.Paths {
		if len(raw) == 0 {
			continue
		}
		paths = append(paths, overhang.NewPath(raw...))
	}
	paths = append(paths, overhang.ParsePaths(asm.PathsText)...)

	ctx = a.withLogger(ctx)
	a.logger.Debug("Aligning assembly.", "assembly", name, "paths", len(paths))
	res, err := msa.Align(ctx, paths, a.maxPathsOption())
	if err != nil {
		return nil, fmt.Errorf("assembly '%s': %w", name, err)
	}
	if res.Truncated {
		a.logger.Warn("Alignment shows only part of the assembly paths.", "assembly", name, "rows", len(res.Rows))
	}
	return &AlignmentReport{Assembly: name, Result: res}, nil
}

// RunAlign aligns the named assemblies, or all of them when names is empty,
// and renders the reports in the configured output format.
func (a *App) RunAlign(ctx context.Context, names []string) error {
	if a.model == nil {
		return errors.New("configuration is not loaded")
	}
	names, err := selectNames("assembly", names, a.model.AssemblyNames())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.logger.Warn("No assemblies declared, nothing to align.")
	}

	reports := make([]*AlignmentReport, 0, len(names))
	for _, n := range names {
		r, err := a.Align(ctx, n)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}
	return a.render(func(r renderer) error { return r.alignments(reports) })
}
