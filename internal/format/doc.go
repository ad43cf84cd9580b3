// Package format renders a character automaton as a compact edge diagram.
//
// Nodes reachable from the start node are numbered from 1 in breadth-first
// discovery order. Each node prints one line per distinct destination, with
// every label leading there joined by "|":
//
//	1 -a|b-> 2
//	  -c-> 3
//	2 -d-> 2
//
// Continuation lines blank the source column. A start node with no edges
// prints as a bare id. The line format is relied on by tests and tooling.
package format
