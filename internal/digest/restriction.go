package digest

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// Cut is one end of a raw fragment as reported by a Digester.
type Cut struct {
	// Position is the 0-based start of the overhang on the forward strand.
	Position int
	// Overhang is the overhang read on the forward strand, in whatever case
	// the input sequence used.
	Overhang string
	// Forward is set when the recognition site lies on the forward strand.
	Forward bool
}

// RawFragment is the span between two consecutive cuts, overhangs included.
// On a circular sequence Start+Length may run past the origin.
type RawFragment struct {
	Start  int
	Length int
	Left   Cut
	Right  Cut
}

// Digester cuts a sequence with a set of enzymes.
type Digester interface {
	Digest(ctx context.Context, sequence string, circular bool, enzymes []Enzyme) ([]RawFragment, error)
}

// Restriction is the default Digester. It scans both strands for
// recognition sites and returns every fragment between two cuts; the loose
// ends of a linear sequence are dropped.
type Restriction struct{}

var _ Digester = Restriction{}

// Digest implements Digester.
func (Restriction) Digest(ctx context.Context, sequence string, circular bool, enzymes []Enzyme) ([]RawFragment, error) {
	n := len(sequence)
	if n == 0 || len(enzymes) == 0 {
		return nil, nil
	}
	upper := strings.ToUpper(sequence)

	// Sites spanning the origin of a circular sequence are found on a
	// doubled copy; only matches starting in the first copy count.
	scan := upper
	if circular {
		scan = upper + upper
	}

	type cutKey struct {
		pos     int
		forward bool
	}
	seen := make(map[cutKey]struct{})
	var cuts []cut

	for _, e := range enzymes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := compile(e)
		if err != nil {
			return nil, err
		}
		if c.OverhangLen > n {
			continue
		}

		add := func(pos int, forward bool) {
			if circular {
				pos = ((pos % n) + n) % n
			} else if pos < 0 || pos+c.OverhangLen > n {
				return
			}
			k := cutKey{pos: pos, forward: forward}
			if _, dup := seen[k]; dup {
				return
			}
			seen[k] = struct{}{}
			cuts = append(cuts, cut{pos: pos, length: c.OverhangLen, forward: forward})
		}

		for _, m := range siteMatches(c.forward, scan, n) {
			add(m[1]+c.Skip, true)
		}
		for _, m := range siteMatches(c.reverse, scan, n) {
			add(m[0]-c.Skip-c.OverhangLen, false)
		}
	}

	sort.SliceStable(cuts, func(i, j int) bool {
		if cuts[i].pos != cuts[j].pos {
			return cuts[i].pos < cuts[j].pos
		}
		return cuts[i].forward && !cuts[j].forward
	})

	read := func(c cut) Cut {
		var b strings.Builder
		for i := 0; i < c.length; i++ {
			b.WriteByte(sequence[(c.pos+i)%n])
		}
		return Cut{Position: c.pos, Overhang: b.String(), Forward: c.forward}
	}

	var fragments []RawFragment
	for i := range cuts {
		j := i + 1
		var end int
		switch {
		case j < len(cuts):
			end = cuts[j].pos
		case circular:
			j = 0
			end = cuts[0].pos + n
		default:
			continue
		}
		fragments = append(fragments, RawFragment{
			Start:  cuts[i].pos,
			Length: end + cuts[j].length - cuts[i].pos,
			Left:   read(cuts[i]),
			Right:  read(cuts[j]),
		})
	}
	return fragments, nil
}

// siteMatches returns every match of re in scan that starts before limit,
// overlapping ones included: the search resumes one base after each match
// start.
func siteMatches(re *regexp.Regexp, scan string, limit int) [][2]int {
	var out [][2]int
	for i := 0; i < limit; {
		loc := re.FindStringIndex(scan[i:])
		if loc == nil || i+loc[0] >= limit {
			break
		}
		out = append(out, [2]int{i + loc[0], i + loc[1]})
		i += loc[0] + 1
	}
	return out
}

type cut struct {
	pos     int
	length  int
	forward bool
}
