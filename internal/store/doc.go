// Package store provides SQLite-backed storage for compiled automata.
//
// Each record holds one named automaton:
//   - the pattern text and case mode it was compiled from
//   - the ir.Automaton snapshot as canonical JSON
//   - its content hash (ir.AutomatonHash)
//   - a UUIDv7 id and a logical seq assigned at insert time
//
// Terminal node ids are also kept in automaton_terminals so they can be
// queried without decoding the snapshot.
//
// # Ordering
//
// All listing queries use ORDER BY seq ASC, id ASC COLLATE BINARY so results
// do not depend on wall time or insertion races.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
