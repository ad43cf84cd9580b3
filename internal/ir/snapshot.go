package ir

import (
	"fmt"

	"github.com/roach88/chartrie/internal/format"
	"github.com/roach88/chartrie/internal/graph"
	"github.com/roach88/chartrie/internal/predicate"
)

// Snapshot captures every node reachable from start. Node ids match the ids
// format.Format prints for the same graph.
func Snapshot(g *graph.Graph, start graph.NodeID) *Automaton {
	ids := format.Numbering(g, start)

	order := make([]graph.NodeID, len(ids))
	for node, id := range ids {
		order[id-1] = node
	}

	nodes := make([]Node, len(order))
	for i, node := range order {
		n := Node{ID: i + 1, Terminal: g.IsTerminal(node)}
		for _, e := range g.Edges(node) {
			n.Edges = append(n.Edges, Edge{
				Predicate: predicate.Describe(e.Predicate),
				Target:    ids[e.Target],
			})
		}
		nodes[i] = n
	}

	return &Automaton{Version: SnapshotVersion, Start: 1, Nodes: nodes}
}

// Restore rebuilds the graph described by a. The returned start node
// corresponds to a.Start.
func (a *Automaton) Restore() (*graph.Graph, graph.NodeID, error) {
	if a == nil {
		return nil, 0, fmt.Errorf("restore: nil automaton")
	}
	if a.Version != SnapshotVersion {
		return nil, 0, fmt.Errorf("restore: unsupported snapshot version %q", a.Version)
	}

	g := graph.New()
	byID := make(map[int]graph.NodeID, len(a.Nodes))
	for _, n := range a.Nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, 0, fmt.Errorf("restore: duplicate node id %d", n.ID)
		}
		byID[n.ID] = g.NewNode()
	}

	start, ok := byID[a.Start]
	if !ok {
		return nil, 0, fmt.Errorf("restore: start node %d not present", a.Start)
	}

	for _, n := range a.Nodes {
		src := byID[n.ID]
		g.SetTerminal(src, n.Terminal)
		for i, e := range n.Edges {
			dst, ok := byID[e.Target]
			if !ok {
				return nil, 0, fmt.Errorf("restore: node %d edge %d targets unknown node %d", n.ID, i, e.Target)
			}
			p, err := e.Predicate.Predicate()
			if err != nil {
				return nil, 0, fmt.Errorf("restore: node %d edge %d: %w", n.ID, i, err)
			}
			g.Connect(src, p, dst)
		}
	}
	return g, start, nil
}

// Terminals returns the ids of terminal nodes in id order.
func (a *Automaton) Terminals() []int {
	var out []int
	for _, n := range a.Nodes {
		if n.Terminal {
			out = append(out, n.ID)
		}
	}
	return out
}

// EdgeCount returns the total number of edges in the snapshot.
func (a *Automaton) EdgeCount() int {
	total := 0
	for _, n := range a.Nodes {
		total += len(n.Edges)
	}
	return total
}
