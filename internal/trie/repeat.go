package trie

import (
	"strconv"

	"github.com/roach88/chartrie/internal/graph"
	"github.com/roach88/chartrie/internal/predicate"
)

// redirect is one planned edge rewrite: src -[label]-> old becomes
// src -[label]-> each target.
type redirect struct {
	src   graph.NodeID
	label predicate.Predicate
	old   graph.NodeID
}

// appendOneOrMore builds body twice and loops the second copy back onto the
// ends of the first:
//
//	first  = body(start)
//	second = body(first)
//	every edge into a node created as an end of the second copy is
//	repointed at the members of first
//
// The nodes of second that were created by the second copy become
// unreachable; the interior of the second copy is the loop body.
func appendOneOrMore(g *graph.Graph, start graph.NodeID, body *Op, owned bool) graph.Frontier {
	first := body.appendNode(g, start, owned)
	closeLoop(g, start, body, first)
	return first
}

// appendZeroOrMore closes the loop on start itself when that is exact: start
// is owned and had no outgoing edges, the body never points back at start,
// and every end of the body other than start has no outgoing edges. Edges
// into those ends are repointed at start, giving a loop through start and
// the frontier {start}.
//
// Otherwise it builds OneOrMore with a bypass, returning
// union(OneOrMore(body), {start}).
func appendZeroOrMore(g *graph.Graph, start graph.NodeID, body *Op, owned bool) graph.Frontier {
	if !owned || g.HasOutEdges(start) {
		// Returning just {start} would need a loop on start, which would
		// let the body prefix the paths that already leave start or that
		// other ops add there later. Keep the loop off start instead.
		loop := appendOneOrMore(g, start, body, false)
		loop.Add(start)
		return loop
	}

	// start is also an end of the loop, so the body does not own it.
	first := body.appendNode(g, start, false)
	if !collapsible(g, start, first) {
		closeLoop(g, start, body, first)
		loop := graph.Union(first)
		loop.Add(start)
		return loop
	}

	tails := graph.NewFrontier()
	for _, id := range first.IDs() {
		if id != start {
			tails.Add(id)
		}
	}
	self := graph.NewFrontier(start)
	applyRedirects(g, planRedirects(g, start, tails), self)
	return self
}

func collapsible(g *graph.Graph, start graph.NodeID, first graph.Frontier) bool {
	for _, id := range first.IDs() {
		if id != start && g.HasOutEdges(id) {
			return false
		}
	}
	return !reentersStart(g, start)
}

// closeLoop appends the second copy of body after first and redirects its
// tails onto first. The members of first are loop re-entry points as well
// as ends, so the second copy does not own them.
func closeLoop(g *graph.Graph, start graph.NodeID, body *Op, first graph.Frontier) {
	var second graph.Frontier
	for _, id := range first.IDs() {
		second.AddAll(body.appendNode(g, id, false))
	}

	tails := graph.NewFrontier()
	for _, id := range second.IDs() {
		if !first.Contains(id) {
			tails.Add(id)
		}
	}
	applyRedirects(g, planRedirects(g, start, tails), first)
}

// planRedirects walks every simple path from start and records the edges
// whose target is a tail. Each (source, label, tail) triple is planned once.
// Nothing is mutated while walking.
func planRedirects(g *graph.Graph, start graph.NodeID, tails graph.Frontier) []redirect {
	if tails.Len() == 0 {
		return nil
	}

	var plan []redirect
	seen := make(map[string]bool)
	g.DepthFirstPrefixTraversal(start, func(path []graph.Frame, _ bool) {
		if len(path) < 2 {
			return
		}
		last := path[len(path)-1]
		if !tails.Contains(last.Node) {
			return
		}
		src := path[len(path)-2].Node
		key := strconv.Itoa(int(src)) + "\x00" + predicate.Key(last.Label) + "\x00" + strconv.Itoa(int(last.Node))
		if seen[key] {
			return
		}
		seen[key] = true
		plan = append(plan, redirect{src: src, label: last.Label, old: last.Node})
	})
	return plan
}

// applyRedirects rewrites every planned edge. An edge that pointed at a tail
// once points at every member of targets afterwards, preserving multiplicity.
func applyRedirects(g *graph.Graph, plan []redirect, targets graph.Frontier) {
	ids := targets.IDs()
	if len(ids) == 0 {
		return
	}
	for _, r := range plan {
		n := g.Replace(r.src, r.label, r.old, ids[0])
		for _, extra := range ids[1:] {
			for i := 0; i < n; i++ {
				g.Connect(r.src, r.label, extra)
			}
		}
	}
}

// reentersStart reports whether any edge reachable from start points back
// at start.
func reentersStart(g *graph.Graph, start graph.NodeID) bool {
	for _, id := range g.Reachable(start) {
		for _, e := range g.Edges(id) {
			if e.Target == start {
				return true
			}
		}
	}
	return false
}
