package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
	"github.com/roach88/chartrie/internal/predicate"
	"github.com/roach88/chartrie/internal/trie"
)

// CompilePattern parses a CUE value into a PatternSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the pattern struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`pattern: digits: regexp: "[0-9]+"`)
//	spec, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.digits")))
//
// A regexp that does not parse is not an error here; Validate reports it
// with its offset.
func CompilePattern(v cue.Value) (*ir.PatternSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.PatternSpec{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	regexpVal := v.LookupPath(cue.ParsePath("regexp"))
	if !regexpVal.Exists() {
		return nil, &CompileError{
			Field:   "regexp",
			Message: "regexp is required",
			Pos:     v.Pos(),
		}
	}
	expr, err := regexpVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	spec.Regexp = expr

	if descVal := v.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Description = desc
	}

	if icVal := v.LookupPath(cue.ParsePath("ignore_case")); icVal.Exists() {
		ic, err := icVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.IgnoreCase = ic
	}

	// An unparsable regexp is kept with no references; Validate parses it
	// again and reports the syntax error with its offset.
	spec.References, _ = References(expr)
	return spec, nil
}

// CompileCatalog parses every entry under the top-level "pattern" field.
func CompileCatalog(v cue.Value) (*ir.Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	catalog := &ir.Catalog{Patterns: make(map[string]ir.PatternSpec)}

	patternsVal := v.LookupPath(cue.ParsePath("pattern"))
	if !patternsVal.Exists() {
		return catalog, nil
	}

	iter, err := patternsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		spec, err := CompilePattern(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", iter.Selector().String(), err)
		}
		catalog.Patterns[spec.Name] = *spec
	}
	return catalog, nil
}

// References returns the {name} references in expr in first-seen order,
// without duplicates.
func References(expr string) ([]string, error) {
	var refs []string
	seen := make(map[string]bool)
	placeholder := trie.Predicate(predicate.Any())

	_, err := pattern.Parse(expr, pattern.WithResolver(func(name string) (*trie.Op, error) {
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
		return placeholder, nil
	}))
	if err != nil {
		return nil, err
	}
	return refs, nil
}
