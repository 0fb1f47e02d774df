// Package dag provides the directed graph used by the assembly engine. Nodes
// are opaque string IDs (EdgeKeys for path graphs, overhangs for syntax
// graphs); edges are kept in insertion order so that generations, sources,
// sinks and path searches come out the same way on every run.
//
// The graph itself may contain cycles. Algorithms that need a DAG, such as
// Generations, report ErrCycle instead of looping; CutIncoming is the
// primitive used to break the cycle of a circular assembly.
package dag
