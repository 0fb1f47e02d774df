package overhang

import (
	"bufio"
	"strings"
)

// ParsePaths reads paths in the notation users type into the editor: one
// overhang per line, paths separated by blank lines. Characters outside ACGT
// are dropped and bases are upper-cased, so "aacg " and "AACG" are the same
// overhang. A line that is empty after filtering ends the current path.
func ParsePaths(text string) []Path {
	var (
		paths   []Path
		current Path
	)
	flush := func() {
		if len(current) > 0 {
			paths = append(paths, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := filterBases(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, Overhang(line))
	}
	flush()
	return paths
}

func filterBases(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'A', 'C', 'G', 'T':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
