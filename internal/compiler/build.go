package compiler

import (
	"fmt"

	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
	"github.com/roach88/chartrie/internal/trie"
)

// Build validates the catalog and parses every pattern. A {name} reference
// becomes trie.Embedded(name, op) around the referenced pattern's op, so the
// same op is shared by every pattern that references it.
//
// Validation failures are returned as ValidationErrors.
func Build(c *ir.Catalog) (map[string]*trie.Op, error) {
	if errs := Validate(c); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	order, err := BuildOrder(c)
	if err != nil {
		return nil, err
	}

	ops := make(map[string]*trie.Op, len(order))
	resolve := func(name string) (*trie.Op, error) {
		op, ok := ops[name]
		if !ok {
			return nil, fmt.Errorf("pattern %q is not built yet", name)
		}
		return op, nil
	}

	for _, name := range order {
		spec := c.Patterns[name]
		opts := []pattern.Option{pattern.WithResolver(resolve)}
		if spec.IgnoreCase {
			opts = append(opts, pattern.WithIgnoreCase())
		}
		op, err := pattern.Parse(spec.Regexp, opts...)
		if err != nil {
			return nil, fmt.Errorf("build pattern %s: %w", name, err)
		}
		ops[name] = op
	}
	return ops, nil
}
