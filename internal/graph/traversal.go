package graph

import (
	"strconv"

	"github.com/roach88/chartrie/internal/predicate"
)

// Frame is one step of a traversal path: the label of the edge taken to
// reach Node. The first frame of every path is the start node and has a nil
// Label.
type Frame struct {
	Label predicate.Predicate
	Node  NodeID
}

// Visitor receives the current path and whether its last frame is a leaf,
// meaning no outgoing edge of that node leads to a node not already on the
// path. The path slice is reused between calls; copy it to retain it.
// Visitors must not mutate the graph.
type Visitor func(path []Frame, leaf bool)

// DepthFirstPrefixTraversal calls visit once for every simple path that
// starts at start, in depth-first order.
//
// Paths never repeat a node, which guarantees termination on cyclic graphs,
// but a node is visited once for each distinct path leading to it. Edges are
// considered one predicate at a time; parallel edges with the same label and
// target produce a single path.
//
// The traversal uses an explicit stack, so its depth is bounded by heap, not
// by the goroutine stack.
func (g *Graph) DepthFirstPrefixTraversal(start NodeID, visit Visitor) {
	g.check(start)

	type cursor struct {
		next []Edge
		pos  int
	}

	onPath := map[NodeID]bool{start: true}
	path := []Frame{{Node: start}}
	first := g.candidates(start, onPath)
	stack := []cursor{{next: first}}
	visit(path, len(first) == 0)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos == len(top.next) {
			last := path[len(path)-1]
			delete(onPath, last.Node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		e := top.next[top.pos]
		top.pos++

		path = append(path, Frame{Label: e.Predicate, Node: e.Target})
		onPath[e.Target] = true
		next := g.candidates(e.Target, onPath)
		stack = append(stack, cursor{next: next})
		visit(path, len(next) == 0)
	}
}

// candidates returns the distinct (label, target) edges of id whose target
// is not on the current path.
func (g *Graph) candidates(id NodeID, onPath map[NodeID]bool) []Edge {
	var out []Edge
	seen := make(map[string]bool)
	for _, e := range g.nodes[id].edges {
		if onPath[e.Target] {
			continue
		}
		k := predicate.Key(e.Predicate) + "\x00" + strconv.Itoa(int(e.Target))
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
