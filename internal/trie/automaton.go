package trie

import "github.com/roach88/chartrie/internal/graph"

// Automaton is a compiled operator tree: a graph, its start node and the
// accepting frontier. Every member of Accept is marked terminal.
type Automaton struct {
	Graph  *graph.Graph
	Start  graph.NodeID
	Accept graph.Frontier
}

// Compile appends op to the start node of a fresh graph and marks the
// resulting frontier terminal.
func Compile(op *Op) *Automaton {
	g := graph.New()
	start := g.NewNode()
	accept := op.AppendTo(g, start)
	for _, id := range accept.IDs() {
		g.SetTerminal(id, true)
	}
	return &Automaton{Graph: g, Start: start, Accept: accept}
}
