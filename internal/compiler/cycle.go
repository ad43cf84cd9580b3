package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/chartrie/internal/ir"
)

// ReferenceCycle represents patterns that reference each other in a loop.
// An op tree cannot embed itself, so every cycle is an error.
type ReferenceCycle struct {
	Path    []string `json:"path"`    // Cycle path: ["a", "b", "a"]
	Message string   `json:"message"` // Human-readable description
}

// AnalyzeCycles reports every reference cycle in the catalog.
//
// The algorithm:
//  1. Build the pattern -> referenced pattern graph
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each SCC with size > 1 or self-loops as a cycle
//
// Results are deterministic: nodes are visited in sorted name order.
func AnalyzeCycles(c *ir.Catalog) []ReferenceCycle {
	graph := buildReferenceGraph(c)

	var cycles []ReferenceCycle
	for _, scc := range tarjanSCC(graph) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			cycles = append(cycles, sccToCycle(scc, graph))
		}
	}
	return cycles
}

// BuildOrder returns catalog names ordered so every pattern comes after the
// patterns it references. Ties are broken by name. It fails if the
// references contain a cycle.
func BuildOrder(c *ir.Catalog) ([]string, error) {
	graph := buildReferenceGraph(c)

	var order []string
	for _, scc := range tarjanSCC(graph) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			cycle := sccToCycle(scc, graph)
			return nil, fmt.Errorf("build order: %s", cycle.Message)
		}
		order = append(order, scc[0])
	}
	return order, nil
}

// referenceGraph maps pattern name -> referenced pattern names that exist
// in the catalog.
type referenceGraph map[string][]string

func buildReferenceGraph(c *ir.Catalog) referenceGraph {
	graph := make(referenceGraph, len(c.Patterns))
	for name, spec := range c.Patterns {
		graph[name] = []string{}
		for _, ref := range spec.References {
			if _, ok := c.Patterns[ref]; ok {
				graph[name] = append(graph[name], ref)
			}
		}
		slices.Sort(graph[name])
	}
	return graph
}

func hasSelfLoop(node string, graph referenceGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
//
// An SCC is emitted only after every SCC reachable from it, so with edges
// pointing at referenced patterns the output lists dependencies first.
func tarjanSCC(graph referenceGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			slices.Sort(scc)
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]string, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

func sccToCycle(scc []string, graph referenceGraph) ReferenceCycle {
	if len(scc) == 1 {
		name := scc[0]
		return ReferenceCycle{
			Path:    []string{name, name},
			Message: fmt.Sprintf("pattern references itself: %s -> %s", name, name),
		}
	}

	path := reconstructCyclePath(scc, graph)
	return ReferenceCycle{
		Path:    path,
		Message: fmt.Sprintf("reference cycle: %s", strings.Join(path, " -> ")),
	}
}

// reconstructCyclePath follows edges inside the SCC from its first member
// until it returns there.
func reconstructCyclePath(scc []string, graph referenceGraph) []string {
	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if members[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
