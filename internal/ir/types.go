package ir

import "github.com/roach88/chartrie/internal/predicate"

// Automaton is a snapshot of a compiled graph.
type Automaton struct {
	// Version is the snapshot schema version.
	Version string `json:"version"`

	// Pattern is the source text the automaton was compiled from, if known.
	Pattern string `json:"pattern,omitempty"`

	// Start is the id of the start node. Snapshots taken by Snapshot always
	// use 1.
	Start int `json:"start"`

	// Nodes are ordered by id.
	Nodes []Node `json:"nodes"`
}

// Node is one automaton state.
type Node struct {
	ID       int    `json:"id"`
	Terminal bool   `json:"terminal,omitempty"`
	Edges    []Edge `json:"edges,omitempty"`
}

// Edge is one labeled transition, in insertion order. Parallel identical
// edges are kept.
type Edge struct {
	Predicate predicate.Descriptor `json:"predicate"`
	Target    int                  `json:"target"`
}

// PatternSpec is one named entry of a pattern catalog.
type PatternSpec struct {
	Name        string `json:"name"`
	Regexp      string `json:"regexp"`
	Description string `json:"description,omitempty"`
	IgnoreCase  bool   `json:"ignore_case,omitempty"`

	// References lists the {name} references in Regexp, in first-seen
	// order without duplicates.
	References []string `json:"references,omitempty"`
}

// Catalog is a set of pattern specs keyed by name.
type Catalog struct {
	Patterns map[string]PatternSpec `json:"patterns"`
}

// Names returns the catalog's pattern names in sorted order.
func (c Catalog) Names() []string {
	return sortedKeys(c.Patterns)
}
