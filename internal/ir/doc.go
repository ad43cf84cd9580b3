// Package ir provides the serializable form of compiled automata and
// pattern catalogs.
//
// An Automaton snapshot lists every node reachable from the start node,
// numbered the way format.Numbering numbers them, with each edge's predicate
// stored as a predicate.Descriptor. Snapshots round-trip through Restore and
// hash deterministically through canonical JSON.
//
// Key design constraints:
//   - NO float types anywhere; all numbers are integers
//   - All JSON tags use snake_case
//   - Strings are NFC normalized at the canonical serialization boundary
package ir
