package dag

import "fmt"

// Generations partitions the nodes into topological generations using Kahn's
// algorithm. Generation 0 holds every node without incoming edges; each
// following generation holds the nodes whose last predecessor sits in the
// generation before it. Every edge therefore points from a lower to a higher
// generation, and no two nodes of one generation depend on each other.
//
// An error wrapping ErrCycle is returned when some nodes can never reach
// in-degree zero.
func (g *Graph) Generations() ([][]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	inDegree := make(map[string]int, len(g.order))
	var current []string
	for _, id := range g.order {
		d := g.nodes[id].deps.len()
		inDegree[id] = d
		if d == 0 {
			current = append(current, id)
		}
	}

	var generations [][]string
	placed := 0
	for len(current) > 0 {
		generations = append(generations, current)
		placed += len(current)

		var next []string
		for _, id := range current {
			for _, child := range g.nodes[id].dependents.ids {
				inDegree[child]--
				if inDegree[child] == 0 {
					next = append(next, child)
				}
			}
		}
		current = next
	}

	if placed != len(g.order) {
		for _, id := range g.order {
			if inDegree[id] > 0 {
				return nil, fmt.Errorf("%w: node '%s' is part of a cycle", ErrCycle, id)
			}
		}
	}
	return generations, nil
}

// GenerationIndex maps each node to the index of its generation.
func GenerationIndex(generations [][]string) map[string]int {
	index := make(map[string]int)
	for i, gen := range generations {
		for _, id := range gen {
			index[id] = i
		}
	}
	return index
}
