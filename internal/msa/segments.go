package msa

import "strings"

// AlternativeSeparator joins the cells of a segment into one alternative.
const AlternativeSeparator = " | "

// Segment is a contiguous column range [Start, End] of the matrix.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
	// Stable is set when every row holds the same value in every column of
	// the segment.
	Stable bool `json:"stable"`
	// Alternatives lists the distinct joined cell strings seen across rows,
	// in order of first appearance.
	Alternatives []string `json:"alternatives"`
	// RowAlternative gives, for each row, the index into Alternatives.
	RowAlternative []int `json:"-"`
}

// Segments splits the columns of rows into segments. Adjacent columns share a
// segment when both are stable, or when both vary and vary independently:
// the number of distinct value pairs across the two columns exceeds the
// larger of their distinct-value counts. Any other pair of neighbours starts
// a new segment.
//
// Columns that are merely aliases of one choice (every value in one column
// determines the value in the next) therefore end up in separate segments
// whose alternatives correspond one to one.
func Segments(rows []Row) []Segment {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	width := len(rows[0])

	stable := make([]bool, width)
	distinct := make([]int, width)
	for c := 0; c < width; c++ {
		values := make(map[string]struct{})
		for _, r := range rows {
			values[cellAt(r, c)] = struct{}{}
		}
		distinct[c] = len(values)
		stable[c] = len(values) == 1
	}

	var segments []Segment
	start := 0
	for c := 1; c <= width; c++ {
		if c < width && sameSegment(rows, c-1, c, stable, distinct) {
			continue
		}
		segments = append(segments, newSegment(rows, start, c-1, stable[start]))
		start = c
	}
	return segments
}

func sameSegment(rows []Row, a, b int, stable []bool, distinct []int) bool {
	if stable[a] && stable[b] {
		return true
	}
	if stable[a] || stable[b] {
		return false
	}
	pairs := make(map[[2]string]struct{})
	for _, r := range rows {
		pairs[[2]string{cellAt(r, a), cellAt(r, b)}] = struct{}{}
	}
	return len(pairs) > max(distinct[a], distinct[b])
}

func newSegment(rows []Row, start, end int, stable bool) Segment {
	s := Segment{Start: start, End: end, Stable: stable, RowAlternative: make([]int, len(rows))}
	index := make(map[string]int)
	for i, r := range rows {
		alt := alternative(r, start, end)
		idx, ok := index[alt]
		if !ok {
			idx = len(s.Alternatives)
			index[alt] = idx
			s.Alternatives = append(s.Alternatives, alt)
		}
		s.RowAlternative[i] = idx
	}
	return s
}

// alternative joins the cells of r in columns [start, end].
func alternative(r Row, start, end int) string {
	parts := make([]string, 0, end-start+1)
	for c := start; c <= end; c++ {
		parts = append(parts, cellAt(r, c))
	}
	return strings.Join(parts, AlternativeSeparator)
}

// cellAt tolerates ragged rows by treating missing columns as spacers.
func cellAt(r Row, c int) string {
	if c < len(r) {
		return r[c].String()
	}
	return ""
}
