package trie

import (
	"fmt"

	"github.com/roach88/chartrie/internal/graph"
)

// AppendTo materializes o onto g starting at start and returns the end
// frontier.
func (o *Op) AppendTo(g *graph.Graph, start graph.NodeID) graph.Frontier {
	if g == nil {
		panic("trie: AppendTo called with nil graph")
	}
	return o.appendNode(g, start, true)
}

// AppendToFrontier applies o to every member of from and returns the union
// of the resulting frontiers.
func (o *Op) AppendToFrontier(g *graph.Graph, from graph.Frontier) graph.Frontier {
	if g == nil {
		panic("trie: AppendToFrontier called with nil graph")
	}
	var out graph.Frontier
	for _, id := range from.IDs() {
		out.AddAll(o.appendNode(g, id, true))
	}
	return out
}

// appendNode appends o at n. owned reports that every later continuation
// of n goes through the frontier o returns, so o may turn n itself into a
// loop point. Or siblings, Optional bypasses and the second copy of a
// repetition share their start node and are never owned.
func (o *Op) appendNode(g *graph.Graph, n graph.NodeID, owned bool) graph.Frontier {
	switch o.kind {
	case KindPredicate:
		return g.Append(n, o.pred)

	case KindString:
		f := graph.NewFrontier(n)
		for _, r := range o.text {
			f = appendEach(g, f, r, o.cs)
		}
		return f

	case KindAnd:
		f := graph.NewFrontier(n)
		for _, child := range o.children {
			var next graph.Frontier
			for _, id := range f.IDs() {
				// Nodes created by earlier children are only continued
				// by this child.
				next.AddAll(child.appendNode(g, id, owned || id != n))
			}
			f = next
		}
		return f

	case KindOr:
		shared := len(o.children) > 1
		var out graph.Frontier
		for _, child := range o.children {
			out.AddAll(child.appendNode(g, n, owned && !shared))
		}
		return out

	case KindOptional:
		out := o.children[0].appendNode(g, n, false)
		out.Add(n)
		return out

	case KindOneOrMore:
		return appendOneOrMore(g, n, o.children[0], owned)

	case KindZeroOrMore:
		return appendZeroOrMore(g, n, o.children[0], owned)

	case KindEmbedded:
		return o.children[0].appendNode(g, n, owned)

	default:
		panic(fmt.Sprintf("trie: unknown op kind %s", o.kind))
	}
}

func appendEach(g *graph.Graph, from graph.Frontier, r rune, cs CaseSensitivity) graph.Frontier {
	p := runePredicate(r, cs)
	var out graph.Frontier
	for _, id := range from.IDs() {
		out.AddAll(g.Append(id, p))
	}
	return out
}
