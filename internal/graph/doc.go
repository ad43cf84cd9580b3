// Package graph implements the mutable character automaton: a directed
// multigraph whose edges are labeled with predicates.
//
// Nodes live in an arena owned by Graph and are addressed by NodeID. Node
// identity is index equality, so two fresh nodes are always distinct even
// when both have no edges. Nodes are never removed; a node that loses its
// last incoming edge simply becomes unreachable.
//
// The graph may contain cycles. Every algorithm here treats it as a general
// multigraph: the same (predicate, target) edge may appear more than once on
// a node and each occurrence counts separately for Replace and Remove.
//
// Mutation primitives panic on contract violations (nil predicate, unknown
// NodeID). These are programming errors, not runtime conditions.
//
// A Graph is not safe for concurrent mutation. Automata built concurrently
// must use separate graphs.
package graph
