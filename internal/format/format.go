package format

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/chartrie/internal/graph"
	"github.com/roach88/chartrie/internal/predicate"
)

// Labeler renders the id assigned to a node.
type Labeler func(g *graph.Graph, node graph.NodeID, id int) string

// DefaultLabel renders the plain id.
func DefaultLabel(_ *graph.Graph, _ graph.NodeID, id int) string {
	return strconv.Itoa(id)
}

// TerminalLabel renders terminal nodes as "(id)".
func TerminalLabel(g *graph.Graph, node graph.NodeID, id int) string {
	if g.IsTerminal(node) {
		return "(" + strconv.Itoa(id) + ")"
	}
	return strconv.Itoa(id)
}

// Formatter renders graphs with a node labeler. The zero value uses
// DefaultLabel.
type Formatter struct {
	Label Labeler
}

// Format renders g from start with DefaultLabel.
func Format(g *graph.Graph, start graph.NodeID) []string {
	return Formatter{}.Format(g, start)
}

// Format renders g from start.
func (f Formatter) Format(g *graph.Graph, start graph.NodeID) []string {
	if g == nil {
		panic("format: nil graph")
	}
	label := f.Label
	if label == nil {
		label = DefaultLabel
	}

	var lines []string
	walk(g, start, func(node graph.NodeID, ids map[graph.NodeID]int, groups []group) {
		src := label(g, node, ids[node])
		if len(groups) == 0 {
			if node == start {
				lines = append(lines, src)
			}
			return
		}
		blank := strings.Repeat(" ", utf8.RuneCountInString(src))
		for i, grp := range groups {
			head := src
			if i > 0 {
				head = blank
			}
			lines = append(lines, head+" -"+strings.Join(grp.labels, "|")+"-> "+label(g, grp.dst, ids[grp.dst]))
		}
	})
	return lines
}

// Numbering returns the ids Format would assign to every node reachable
// from start.
func Numbering(g *graph.Graph, start graph.NodeID) map[graph.NodeID]int {
	if g == nil {
		panic("format: nil graph")
	}
	var out map[graph.NodeID]int
	walk(g, start, func(_ graph.NodeID, ids map[graph.NodeID]int, _ []group) {
		out = ids
	})
	return out
}

// group is every edge from one node to one destination.
type group struct {
	dst    graph.NodeID
	labels []string
}

// walk visits nodes in id order. ids is shared and grows as destinations
// are discovered; by the time a node is visited all its destinations have ids.
func walk(g *graph.Graph, start graph.NodeID, visit func(node graph.NodeID, ids map[graph.NodeID]int, groups []group)) {
	ids := map[graph.NodeID]int{start: 1}
	order := []graph.NodeID{start}

	for i := 0; i < len(order); i++ {
		node := order[i]

		var groups []group
		byDst := make(map[graph.NodeID]int)
		seen := make(map[graph.NodeID]map[string]bool)
		for _, e := range g.Edges(node) {
			if _, ok := ids[e.Target]; !ok {
				ids[e.Target] = len(order) + 1
				order = append(order, e.Target)
			}
			idx, ok := byDst[e.Target]
			if !ok {
				idx = len(groups)
				byDst[e.Target] = idx
				groups = append(groups, group{dst: e.Target})
				seen[e.Target] = make(map[string]bool)
			}
			key := predicate.Key(e.Predicate)
			if seen[e.Target][key] {
				continue
			}
			seen[e.Target][key] = true
			groups[idx].labels = append(groups[idx].labels, e.Predicate.String())
		}
		visit(node, ids, groups)
	}
}
