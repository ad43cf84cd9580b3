// Package trie provides the construction algebra that grows a character
// automaton.
//
// An *Op is an immutable operator tree: Predicate, String, And, Or,
// Optional, OneOrMore, ZeroOrMore and Embedded. AppendTo materializes the
// tree onto a graph, starting at a node, and returns the frontier of end
// nodes where a following operator would continue.
//
// Repetition is built in two phases. The body is appended twice in
// sequence, then a depth-first prefix traversal finds the edges that finish
// the second copy and redirects them back onto the end of the first copy.
// What is left of the second copy is the loop body; its dangling tail nodes
// become unreachable. ZeroOrMore loops on its start node only when no other
// op continues from that node. See repeat.go.
//
// Construction is single threaded and mutates the graph in place.
package trie
