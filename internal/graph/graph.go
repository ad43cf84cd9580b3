package graph

import (
	"fmt"

	"github.com/roach88/chartrie/internal/predicate"
)

// NodeID addresses a node inside one Graph.
type NodeID int

// Edge is a single labeled transition.
type Edge struct {
	Predicate predicate.Predicate
	Target    NodeID
}

type node struct {
	terminal bool
	edges    []Edge // insertion order
}

// Graph is an arena of nodes.
type Graph struct {
	nodes []node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// NewNode allocates an edge-less, non-terminal node.
func (g *Graph) NewNode() NodeID {
	g.nodes = append(g.nodes, node{})
	return NodeID(len(g.nodes) - 1)
}

// Len returns the number of nodes ever allocated, reachable or not.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Append creates a node, adds the edge src -[p]-> new and returns the new
// node as a singleton frontier.
func (g *Graph) Append(src NodeID, p predicate.Predicate) Frontier {
	g.check(src)
	mustPredicate(p)
	dst := g.NewNode()
	g.nodes[src].edges = append(g.nodes[src].edges, Edge{Predicate: p, Target: dst})
	return NewFrontier(dst)
}

// Connect adds the edge src -[p]-> dst to an existing node. No node is created.
func (g *Graph) Connect(src NodeID, p predicate.Predicate, dst NodeID) {
	g.check(src)
	g.check(dst)
	mustPredicate(p)
	g.nodes[src].edges = append(g.nodes[src].edges, Edge{Predicate: p, Target: dst})
}

// Replace repoints every edge src -[p]-> old to newTarget, keeping each edge
// in place. It returns the number of edges changed.
func (g *Graph) Replace(src NodeID, p predicate.Predicate, old, newTarget NodeID) int {
	g.check(src)
	g.check(old)
	g.check(newTarget)
	mustPredicate(p)

	n := 0
	edges := g.nodes[src].edges
	for i := range edges {
		if edges[i].Target == old && predicate.Equal(edges[i].Predicate, p) {
			edges[i].Target = newTarget
			n++
		}
	}
	return n
}

// Remove deletes every edge src -[p]-> target and returns how many were
// removed. Missing edges are not an error.
func (g *Graph) Remove(src NodeID, p predicate.Predicate, target NodeID) int {
	g.check(src)
	g.check(target)
	mustPredicate(p)

	edges := g.nodes[src].edges
	kept := edges[:0]
	for _, e := range edges {
		if e.Target == target && predicate.Equal(e.Predicate, p) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(edges) - len(kept)
	g.nodes[src].edges = kept
	return removed
}

// HasOutEdges reports whether id has at least one outgoing edge.
func (g *Graph) HasOutEdges(id NodeID) bool {
	g.check(id)
	return len(g.nodes[id].edges) > 0
}

// Fetch returns the targets of edges labeled exactly p, in insertion order.
// This is a label lookup, not predicate evaluation.
func (g *Graph) Fetch(id NodeID, p predicate.Predicate) []NodeID {
	g.check(id)
	mustPredicate(p)
	var out []NodeID
	for _, e := range g.nodes[id].edges {
		if predicate.Equal(e.Predicate, p) {
			out = append(out, e.Target)
		}
	}
	return out
}

// FetchChar is Fetch with an exact-character label.
func (g *Graph) FetchChar(id NodeID, r rune) []NodeID {
	return g.Fetch(id, predicate.Char(r))
}

// Predicates returns the distinct edge labels of id in first-insertion order.
func (g *Graph) Predicates(id NodeID) []predicate.Predicate {
	g.check(id)
	seen := make(map[string]bool)
	var out []predicate.Predicate
	for _, e := range g.nodes[id].edges {
		k := predicate.Key(e.Predicate)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e.Predicate)
	}
	return out
}

// Edges returns a copy of the outgoing edges of id in insertion order.
func (g *Graph) Edges(id NodeID) []Edge {
	g.check(id)
	out := make([]Edge, len(g.nodes[id].edges))
	copy(out, g.nodes[id].edges)
	return out
}

// SetTerminal marks whether the automaton may stop at id.
func (g *Graph) SetTerminal(id NodeID, terminal bool) {
	g.check(id)
	g.nodes[id].terminal = terminal
}

// IsTerminal reports whether id is marked terminal.
func (g *Graph) IsTerminal(id NodeID) bool {
	g.check(id)
	return g.nodes[id].terminal
}

// Reachable returns every node reachable from start, start first, in
// breadth-first order of edge insertion.
func (g *Graph) Reachable(start NodeID) []NodeID {
	g.check(start)
	seen := map[NodeID]bool{start: true}
	order := []NodeID{start}
	for i := 0; i < len(order); i++ {
		for _, e := range g.nodes[order[i]].edges {
			if !seen[e.Target] {
				seen[e.Target] = true
				order = append(order, e.Target)
			}
		}
	}
	return order
}

func (g *Graph) check(id NodeID) {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("graph: node %d does not exist (graph has %d nodes)", id, len(g.nodes)))
	}
}

func mustPredicate(p predicate.Predicate) {
	if p == nil {
		panic("graph: nil predicate")
	}
}
