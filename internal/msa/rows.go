package msa

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/dag"
	"github.com/specialistvlad/overhangs/internal/overhang"
)

// DefaultMaxPaths bounds path enumeration when no WithMaxPaths option is
// given. Enumeration is exponential in the number of independent choices, and
// a few thousand rows is already far more than anyone reads.
const DefaultMaxPaths = 10000

// Option configures BuildRows and Align.
type Option func(*options)

type options struct {
	maxPaths int
}

func defaultOptions() options {
	return options{maxPaths: DefaultMaxPaths}
}

// WithMaxPaths caps the number of enumerated source-to-sink paths. A value of
// zero or less removes the cap.
func WithMaxPaths(n int) Option {
	return func(o *options) {
		o.maxPaths = n
	}
}

// Matrix is the unfiltered alignment of every source-to-sink path.
type Matrix struct {
	// Generations holds the node keys of each column.
	Generations [][]overhang.EdgeKey
	Rows        []Row
	// Truncated is set when the path cap stopped enumeration early; Rows then
	// holds the first paths found.
	Truncated bool
}

// errCapReached unwinds the enumeration once the path cap is hit.
var errCapReached = errors.New("path cap reached")

// BuildRows lays every source-to-sink path of the acyclic graph g out as a
// row. Columns are the topological generations of g; each path puts its parts
// at their generation column and spacers everywhere else.
//
// A node that is both a source and a sink forms a path of its own. A graph
// that still contains a cycle yields an error wrapping dag.ErrCycle.
// Cancelling ctx aborts enumeration with ctx.Err().
func BuildRows(ctx context.Context, g *dag.Graph, opts ...Option) (*Matrix, error) {
	logger := ctxlog.FromContext(ctx)
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("laying out rows: %w", err)
	}
	gens, err := g.Generations()
	if err != nil {
		return nil, fmt.Errorf("computing generations: %w", err)
	}
	column := dag.GenerationIndex(gens)

	m := &Matrix{Generations: make([][]overhang.EdgeKey, len(gens))}
	for i, gen := range gens {
		for _, id := range gen {
			m.Generations[i] = append(m.Generations[i], overhang.EdgeKey(id))
		}
	}

	e := &enumerator{
		ctx:      ctx,
		graph:    g,
		column:   column,
		width:    len(gens),
		maxPaths: o.maxPaths,
	}
	for _, src := range g.Sources() {
		if err := e.visit(src); err != nil {
			if errors.Is(err, errCapReached) {
				m.Truncated = true
				break
			}
			return nil, err
		}
	}
	m.Rows = e.rows

	if m.Truncated {
		logger.Warn("Path enumeration truncated.", "max_paths", o.maxPaths)
	}
	logger.Debug("Alignment rows built.", "columns", len(gens), "rows", len(m.Rows))
	return m, nil
}

// enumerator walks the DAG depth first, keeping the current path on a stack.
type enumerator struct {
	ctx      context.Context
	graph    *dag.Graph
	column   map[string]int
	width    int
	maxPaths int

	stack []string
	rows  []Row
}

func (e *enumerator) visit(id string) error {
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	default:
	}

	e.stack = append(e.stack, id)
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()

	next, err := e.graph.Dependents(id)
	if err != nil {
		return err
	}
	if len(next) == 0 {
		return e.emit()
	}
	for _, n := range next {
		if e.onStack(n) {
			continue
		}
		if err := e.visit(n); err != nil {
			return err
		}
	}
	return nil
}

func (e *enumerator) onStack(id string) bool {
	for _, s := range e.stack {
		if s == id {
			return true
		}
	}
	return false
}

func (e *enumerator) emit() error {
	if e.maxPaths > 0 && len(e.rows) >= e.maxPaths {
		return errCapReached
	}
	row := make(Row, e.width)
	for _, id := range e.stack {
		row[e.column[id]] = PartCell(overhang.EdgeKey(id))
	}
	e.rows = append(e.rows, row)
	return nil
}
