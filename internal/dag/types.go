package dag

import (
	"errors"
	"sync"
)

var (
	// ErrCycle is returned by operations that require an acyclic graph.
	ErrCycle = errors.New("cycle detected")
	// ErrNodeNotFound is returned when an operation names an unknown node.
	ErrNodeNotFound = errors.New("node not found")
)

// Graph is a directed graph of string-identified nodes. Iteration order is
// always insertion order, so every algorithm over a Graph is deterministic.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map and order slice.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in the order they were added.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// deps holds the nodes with an arc into this node (predecessors).
	deps *idSet
	// dependents holds the nodes this node has an arc to (successors).
	dependents *idSet
}

// idSet is an insertion-ordered set of node IDs.
type idSet struct {
	ids   []string
	index map[string]struct{}
}

func newIDSet() *idSet {
	return &idSet{index: make(map[string]struct{})}
}

func (s *idSet) add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *idSet) remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) len() int { return len(s.ids) }

func (s *idSet) list() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
