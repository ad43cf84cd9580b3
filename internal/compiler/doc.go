// Package compiler turns CUE pattern catalogs into op trees.
//
// A catalog is a CUE value with one struct per pattern:
//
//	pattern: digits: {
//		regexp:      "[0-9]+"
//		description: "one or more digits"
//	}
//	pattern: number: regexp: "-?{digits}(\\.{digits})?"
//
// CompileCatalog extracts ir.PatternSpec values, Validate reports schema and
// reference errors with E1xx codes, and Build parses every pattern in
// dependency order so {name} references resolve to already built ops.
package compiler
