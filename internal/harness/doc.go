// Package harness runs conformance scenarios against the automaton builder.
//
// Each scenario compiles one pattern, renders the result with the formatter
// and checks it against the expectations written in the scenario file. The
// compiled automaton is also saved to a fresh in-memory store and restored,
// so every scenario exercises the snapshot round trip as well.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: digits_plus
//	description: "one or more digits loop on the first end node"
//	pattern: "[0-9]+"
//	ignore_case: false
//	terminal: true
//	expect:
//	  lines:
//	    - "1 -[0-9]-> (2)"
//	    - "(2) -[0-9]-> (2)"
//	  accept_count: 1
//	  accepts: ["7", "123"]
//	  rejects: ["", "1a"]
//	  matches:
//	    - input: "123abc"
//	      length: 3
//
// A scenario that expects the pattern to be rejected uses error_offset
// and, optionally, error:
//
//	name: dangling_alternation
//	description: "a trailing | has nothing to alternate with"
//	pattern: "a|"
//	expect:
//	  error_offset: 2
//	  error: "dangling |"
//
// # Golden Files
//
// RunWithGolden compares Result.Golden against
// testdata/golden/{name}.golden using goldie. Regenerate with:
//
//	go test ./internal/harness -update
package harness
