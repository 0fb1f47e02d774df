package digest

import "github.com/specialistvlad/overhangs/internal/overhang"

// Feature is an annotated region of a sequence, [Start, End) in 0-based
// coordinates. On a circular sequence End may be smaller than Start, meaning
// the feature runs through the origin.
type Feature struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// length returns the feature length on a sequence of n bases.
func (f Feature) length(n int, circular bool) int {
	if f.End >= f.Start {
		return f.End - f.Start
	}
	if circular {
		return f.End + n - f.Start
	}
	return -1
}

// End is a normalized cut descriptor.
type End struct {
	Overhang overhang.Overhang `json:"overhang"`
	Forward  bool              `json:"forward"`
}

// Fragment is a raw fragment with normalized ends.
type Fragment struct {
	Start          int
	Length         int
	Left           End
	Right          End
	LongestFeature *Feature
}

func normalize(raw RawFragment) Fragment {
	return Fragment{
		Start:  raw.Start,
		Length: raw.Length,
		Left:   End{Overhang: overhang.Normalize(raw.Left.Overhang), Forward: raw.Left.Forward},
		Right:  End{Overhang: overhang.Normalize(raw.Right.Overhang), Forward: raw.Right.Forward},
	}
}

// mirror returns the fragment as read on the opposite strand. It covers the
// same bases, so the span is unchanged; the ends swap places, their
// overhangs are reverse complemented and their orientation flips.
func (f Fragment) mirror() Fragment {
	return Fragment{
		Start:          f.Start,
		Length:         f.Length,
		Left:           End{Overhang: f.Right.Overhang.ReverseComplement(), Forward: !f.Right.Forward},
		Right:          End{Overhang: f.Left.Overhang.ReverseComplement(), Forward: !f.Left.Forward},
		LongestFeature: f.LongestFeature,
	}
}

// canonical reports whether the fragment reads left to right like a syntax
// part: a forward site on the left and a reverse site on the right.
func (f Fragment) canonical() bool {
	return f.Left.Forward && !f.Right.Forward
}

// contains reports whether feature lies entirely within the fragment.
func (f Fragment) contains(feature Feature, n int, circular bool) bool {
	size := feature.length(n, circular)
	if size < 0 || n == 0 {
		return false
	}
	offset := feature.Start - f.Start
	if circular {
		offset = ((offset % n) + n) % n
	}
	return offset >= 0 && offset+size <= f.Length
}

// longestFeature returns the longest feature contained in f. The first one
// wins on a tie.
func longestFeature(f Fragment, features []Feature, n int, circular bool) *Feature {
	var best *Feature
	bestLen := -1
	for i := range features {
		if !f.contains(features[i], n, circular) {
			continue
		}
		if l := features[i].length(n, circular); l > bestLen {
			feature := features[i]
			best, bestLen = &feature, l
		}
	}
	return best
}
