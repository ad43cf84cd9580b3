package testutil

import "github.com/roach88/chartrie/internal/graph"

// LongestMatch runs the automaton from start over input, following every
// edge whose predicate matches, and returns the length in runes of the
// longest prefix that ends on a terminal node. ok is false when no prefix,
// not even the empty one, is accepted.
func LongestMatch(g *graph.Graph, start graph.NodeID, input string) (n int, ok bool) {
	current := graph.NewFrontier(start)
	if anyTerminal(g, current) {
		n, ok = 0, true
	}

	consumed := 0
	for _, r := range input {
		current = step(g, current, r)
		if current.Len() == 0 {
			break
		}
		consumed++
		if anyTerminal(g, current) {
			n, ok = consumed, true
		}
	}
	return n, ok
}

// Accepts reports whether the automaton accepts all of input.
func Accepts(g *graph.Graph, start graph.NodeID, input string) bool {
	n, ok := LongestMatch(g, start, input)
	return ok && n == len([]rune(input))
}

func step(g *graph.Graph, from graph.Frontier, r rune) graph.Frontier {
	var next graph.Frontier
	for _, id := range from.IDs() {
		for _, e := range g.Edges(id) {
			if e.Predicate.Matches(r) {
				next.Add(e.Target)
			}
		}
	}
	return next
}

func anyTerminal(g *graph.Graph, f graph.Frontier) bool {
	for _, id := range f.IDs() {
		if g.IsTerminal(id) {
			return true
		}
	}
	return false
}
