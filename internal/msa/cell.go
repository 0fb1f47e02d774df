package msa

import (
	"encoding/json"

	"github.com/specialistvlad/overhangs/internal/overhang"
)

// Cell is one position of a matrix row: either a part or a gap.
type Cell struct {
	key overhang.EdgeKey
	set bool
}

// Spacer returns the gap cell.
func Spacer() Cell { return Cell{} }

// PartCell returns a cell holding k.
func PartCell(k overhang.EdgeKey) Cell { return Cell{key: k, set: true} }

// Key returns the part in the cell and false for a spacer.
func (c Cell) Key() (overhang.EdgeKey, bool) { return c.key, c.set }

// IsSpacer reports whether the cell is a gap.
func (c Cell) IsSpacer() bool { return !c.set }

// String renders a part as its EdgeKey and a spacer as the empty string, which
// no EdgeKey can be.
func (c Cell) String() string {
	if !c.set {
		return ""
	}
	return string(c.key)
}

// MarshalJSON encodes a spacer as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(string(c.key))
}

// Row is one assembly path laid out over the generation columns.
type Row []Cell

// Filled counts the non-spacer cells.
func (r Row) Filled() int {
	n := 0
	for _, c := range r {
		if c.set {
			n++
		}
	}
	return n
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}
