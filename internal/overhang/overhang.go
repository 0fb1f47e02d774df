// Package overhang defines the value types shared by the assembly graph
// engine: 4-base overhangs, user paths of overhangs, and the EdgeKey that
// names a part by its flanking overhangs.
//
// Nothing in this package validates the alphabet. Any string is accepted as
// an opaque key; malformed values simply fail to connect to anything.
package overhang

import (
	"strings"

	"github.com/bebop/poly/checks"
	"github.com/bebop/poly/transform"
)

// Separator joins the left and right overhang of an EdgeKey. It never occurs
// inside a valid overhang.
const Separator = "-"

// Overhang is the single-stranded sequence exposed by a restriction cut.
type Overhang string

// Normalize upper-cases and trims an overhang.
func Normalize(s string) Overhang {
	return Overhang(strings.ToUpper(strings.TrimSpace(s)))
}

// ReverseComplement returns the overhang as read from the opposite strand.
func (o Overhang) ReverseComplement() Overhang {
	return Overhang(transform.ReverseComplement(string(o)))
}

// IsPalindromic reports whether the overhang equals its own reverse complement.
// Such overhangs ligate to themselves in either orientation.
func (o Overhang) IsPalindromic() bool {
	if o == "" {
		return false
	}
	return checks.IsPalindromic(string(o))
}

// Path is one intended assembly order, as entered by the user.
type Path []Overhang

// NewPath builds a normalized Path from raw strings.
func NewPath(raw ...string) Path {
	p := make(Path, 0, len(raw))
	for _, r := range raw {
		p = append(p, Normalize(r))
	}
	return p
}

// Edges returns the EdgeKey of every consecutive overhang pair in the path.
func (p Path) Edges() []EdgeKey {
	if len(p) < 2 {
		return nil
	}
	keys := make([]EdgeKey, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		keys = append(keys, EdgeKeyOf(p[i], p[i+1]))
	}
	return keys
}

// EdgeKey identifies a part by its left and right overhang, "<left>-<right>".
type EdgeKey string

// EdgeKeyOf joins two overhangs into an EdgeKey.
func EdgeKeyOf(left, right Overhang) EdgeKey {
	return EdgeKey(string(left) + Separator + string(right))
}

// Split decomposes the key into its overhangs. ok is false when the key does
// not contain exactly one separator.
func (k EdgeKey) Split() (left, right Overhang, ok bool) {
	l, r, found := strings.Cut(string(k), Separator)
	if !found || strings.Contains(r, Separator) {
		return "", "", false
	}
	return Overhang(l), Overhang(r), true
}

// Left returns the left overhang, or "" for a malformed key.
func (k EdgeKey) Left() Overhang {
	l, _, _ := k.Split()
	return l
}

// Right returns the right overhang, or "" for a malformed key.
func (k EdgeKey) Right() Overhang {
	_, r, _ := k.Split()
	return r
}

func (k EdgeKey) String() string { return string(k) }

// ReverseComplement returns the sequence's reverse complement in upper case.
func ReverseComplement(seq string) string {
	return transform.ReverseComplement(strings.ToUpper(seq))
}
