package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSyntax is returned when a plasmid refers to an undeclared syntax.
var ErrUnknownSyntax = errors.New("unknown syntax")

// Model is the unified, format-agnostic representation of every input file.
type Model struct {
	Settings   Settings
	Assemblies map[string]*Assembly
	Syntaxes   map[string]*Syntax
	Enzymes    map[string]*Enzyme
	Plasmids   map[string]*Plasmid
}

// NewModel returns an empty model with all maps allocated.
func NewModel() *Model {
	return &Model{
		Assemblies: make(map[string]*Assembly),
		Syntaxes:   make(map[string]*Syntax),
		Enzymes:    make(map[string]*Enzyme),
		Plasmids:   make(map[string]*Plasmid),
	}
}

// Settings is the `settings` block. Unset values are nil.
type Settings struct {
	MaxPaths *int
}

// Assembly is a named set of overhang paths to align. Paths and the paths
// parsed from PathsText are concatenated, Paths first.
type Assembly struct {
	Name      string
	Paths     [][]string
	PathsText string
}

// Syntax is a named assembly grammar made of parts.
type Syntax struct {
	Name        string
	Description string
	Parts       []*Part
}

// Part is one `part` block of a syntax.
type Part struct {
	Name          string
	LeftOverhang  string
	RightOverhang string
	Description   string
}

// Enzyme is a user-declared restriction enzyme.
type Enzyme struct {
	Name           string
	Site           string
	Skip           int
	OverhangLength int
}

// Plasmid is a sequence to be matched against a syntax.
type Plasmid struct {
	Name     string
	Syntax   string
	Sequence string
	Circular bool
	Enzymes  []string
	Features []*Feature
}

// Feature is an annotated region of a plasmid, [Start, End) in 0-based
// coordinates.
type Feature struct {
	Name  string
	Start int
	End   int
}

// SyntaxFor returns the syntax a plasmid refers to.
func (m *Model) SyntaxFor(p *Plasmid) (*Syntax, error) {
	s, ok := m.Syntaxes[p.Syntax]
	if !ok {
		return nil, fmt.Errorf("plasmid '%s': %w '%s'", p.Name, ErrUnknownSyntax, p.Syntax)
	}
	return s, nil
}

// AssemblyNames returns the assembly names in sorted order.
func (m *Model) AssemblyNames() []string { return sortedKeys(m.Assemblies) }

// PlasmidNames returns the plasmid names in sorted order.
func (m *Model) PlasmidNames() []string { return sortedKeys(m.Plasmids) }

// EnzymeNames returns the user-declared enzyme names in sorted order.
func (m *Model) EnzymeNames() []string { return sortedKeys(m.Enzymes) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
