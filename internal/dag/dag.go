package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       newIDSet(),
		dependents: newIDSet(),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// Adding an existing edge is a no-op. An error is returned if either node
// does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node %q: %w", fromID, ErrNodeNotFound)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node %q: %w", toID, ErrNodeNotFound)
	}

	toNode.deps.add(fromID)
	fromNode.dependents.add(toID)

	return nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.order)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	count := 0
	for _, n := range g.nodes {
		count += n.dependents.len()
	}
	return count
}

// Nodes returns every node ID in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the IDs of nodes with an edge into the given node.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n.deps.list(), nil
}

// Dependents returns the IDs of nodes the given node has an edge to.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n.dependents.list(), nil
}

// Sources returns the nodes without incoming edges, in insertion order.
func (g *Graph) Sources() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var out []string
	for _, id := range g.order {
		if g.nodes[id].deps.len() == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sinks returns the nodes without outgoing edges, in insertion order.
func (g *Graph) Sinks() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var out []string
	for _, id := range g.order {
		if g.nodes[id].dependents.len() == 0 {
			out = append(out, id)
		}
	}
	return out
}

// CutIncoming removes every edge whose target is id and returns how many were
// removed. All other edges are left untouched, so calling it again is a no-op.
func (g *Graph) CutIncoming(id string) (int, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	target, ok := g.nodes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	removed := 0
	for _, fromID := range target.deps.list() {
		g.nodes[fromID].dependents.remove(id)
		target.deps.remove(fromID)
		removed++
	}
	return removed, nil
}

// Clone returns an independent copy of the graph with the same node and edge
// order.
func (g *Graph) Clone() *Graph {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	c := New()
	for _, id := range g.order {
		c.nodes[id] = &node{id: id, deps: newIDSet(), dependents: newIDSet()}
		c.order = append(c.order, id)
	}
	for _, id := range g.order {
		for _, to := range g.nodes[id].dependents.ids {
			c.nodes[id].dependents.add(to)
			c.nodes[to].deps.add(id)
		}
	}
	return c
}

// DetectCycles checks the graph for any cycles. It returns an error wrapping
// ErrCycle if a cycle is found, naming the first node involved.
func (g *Graph) DetectCycles() error {
	if id, ok := g.FindCycle(); ok {
		return fmt.Errorf("%w involving node '%s'", ErrCycle, id)
	}
	return nil
}

// FindCycle returns a node that lies on a cycle, or false when the graph is
// acyclic. Nodes are searched in insertion order, so the answer is stable.
func (g *Graph) FindCycle() (string, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) (string, bool)
	visit = func(n *node) (string, bool) {
		if permanent[n.id] {
			return "", false
		}
		if temporary[n.id] {
			return n.id, true
		}

		temporary[n.id] = true

		for _, dependent := range n.dependents.ids {
			if id, ok := visit(g.nodes[dependent]); ok {
				return id, true
			}
		}

		delete(temporary, n.id)
		permanent[n.id] = true

		return "", false
	}

	for _, id := range g.order {
		if !permanent[id] {
			if cycleID, ok := visit(g.nodes[id]); ok {
				return cycleID, true
			}
		}
	}

	return "", false
}
