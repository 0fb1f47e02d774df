package dag

// ShortestPath returns a fewest-edges path from fromID to toID, both ends
// included, or nil when either node is missing or toID is unreachable. Ties
// are resolved by edge insertion order.
func (g *Graph) ShortestPath(fromID, toID string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, ok := g.nodes[fromID]; !ok {
		return nil
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil
	}
	if fromID == toID {
		return []string{fromID}
	}

	parent := map[string]string{fromID: ""}
	queue := []string{fromID}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, next := range g.nodes[curr].dependents.ids {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = curr
			if next == toID {
				return unwind(parent, fromID, toID)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(parent map[string]string, fromID, toID string) []string {
	var rev []string
	for id := toID; id != fromID; id = parent[id] {
		rev = append(rev, id)
	}
	rev = append(rev, fromID)

	out := make([]string, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}
