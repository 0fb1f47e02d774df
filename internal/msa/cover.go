package msa

import "sort"

// coverItem is one alternative of one variable segment.
type coverItem struct {
	segment     int
	alternative string
}

// CoveringRows picks a small set of rows that together show every
// alternative of every variable segment. It is the greedy set-cover
// heuristic: repeatedly take the row covering the most still-uncovered
// (segment, alternative) pairs, preferring fuller rows (fewer spacers) and
// then earlier rows on ties. The loop stops as soon as everything is covered
// or no remaining row adds coverage, so inconsistent segment data cannot make
// it spin.
//
// Without any variable segment there is only one assembly and the first row
// is returned. The selection is sorted by descending number of parts, keeping
// selection order among equals. The result is not guaranteed to be minimal.
func CoveringRows(rows []Row, segments []Segment) []Row {
	if len(rows) == 0 {
		return nil
	}

	var variable []Segment
	for _, s := range segments {
		if !s.Stable {
			variable = append(variable, s)
		}
	}
	if len(variable) == 0 {
		return []Row{rows[0].clone()}
	}

	covers := make([]map[coverItem]struct{}, len(rows))
	uncovered := make(map[coverItem]struct{})
	for i, r := range rows {
		covers[i] = make(map[coverItem]struct{}, len(variable))
		for si, s := range variable {
			item := coverItem{segment: si, alternative: alternative(r, s.Start, s.End)}
			covers[i][item] = struct{}{}
			uncovered[item] = struct{}{}
		}
	}

	used := make([]bool, len(rows))
	var picked []int
	for len(uncovered) > 0 {
		best, bestGain, bestFilled := -1, 0, -1
		for i := range rows {
			if used[i] {
				continue
			}
			gain := 0
			for item := range covers[i] {
				if _, ok := uncovered[item]; ok {
					gain++
				}
			}
			if gain == 0 {
				continue
			}
			filled := rows[i].Filled()
			if gain > bestGain || (gain == bestGain && filled > bestFilled) {
				best, bestGain, bestFilled = i, gain, filled
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
		for item := range covers[best] {
			delete(uncovered, item)
		}
	}

	selected := make([]Row, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, rows[i].clone())
	}
	sort.SliceStable(selected, func(a, b int) bool {
		return selected[a].Filled() > selected[b].Filled()
	})
	return selected
}
