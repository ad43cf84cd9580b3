package compiler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedIRType = "E100" // unsupported IR type for validation

	// PatternSpec errors (E101-E109)
	ErrPatternNameInvalid = "E101" // name is not an identifier
	ErrPatternRegexpEmpty = "E102" // regexp is required
	ErrPatternSyntax      = "E103" // regexp does not parse

	// Catalog errors (E110-E119)
	ErrUnknownReference = "E110" // {name} refers to no catalog entry
	ErrReferenceCycle   = "E111" // references form a cycle
	ErrCatalogEmpty     = "E112" // catalog has no patterns
)

// nameRe is the syntax accepted for pattern names and {name} references.
var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Offset  int    `json:"offset,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is a list of validation errors returned as one error.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates compiled IR against schema rules.
// Returns all errors found (does not fail-fast).
// Supports PatternSpec and Catalog types.
func Validate(v any) []ValidationError {
	switch spec := v.(type) {
	case *ir.PatternSpec:
		return validatePatternSpec(spec)
	case ir.PatternSpec:
		return validatePatternSpec(&spec)
	case *ir.Catalog:
		return validateCatalog(spec)
	case ir.Catalog:
		return validateCatalog(&spec)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

func validatePatternSpec(spec *ir.PatternSpec) []ValidationError {
	var errs []ValidationError
	field := "pattern." + spec.Name

	// E101: name must be an identifier
	if !nameRe.MatchString(spec.Name) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid pattern name %q", spec.Name),
			Code:    ErrPatternNameInvalid,
		})
	}

	// E102: regexp is required
	if spec.Regexp == "" {
		errs = append(errs, ValidationError{
			Field:   field + ".regexp",
			Message: "regexp is required and must be non-empty",
			Code:    ErrPatternRegexpEmpty,
		})
		return errs
	}

	// E103: regexp must parse
	if _, err := References(spec.Regexp); err != nil {
		ve := ValidationError{
			Field:   field + ".regexp",
			Message: err.Error(),
			Code:    ErrPatternSyntax,
		}
		var pe *pattern.ParseError
		if errors.As(err, &pe) {
			ve.Message = pe.Message
			ve.Offset = pe.Offset
		}
		errs = append(errs, ve)
	}

	return errs
}

func validateCatalog(c *ir.Catalog) []ValidationError {
	var errs []ValidationError

	// E112: at least one pattern
	if len(c.Patterns) == 0 {
		return []ValidationError{{
			Field:   "pattern",
			Message: "catalog has no patterns",
			Code:    ErrCatalogEmpty,
		}}
	}

	for _, name := range c.Names() {
		spec := c.Patterns[name]
		errs = append(errs, validatePatternSpec(&spec)...)

		// E110: every reference must name a catalog entry
		for _, ref := range spec.References {
			if _, ok := c.Patterns[ref]; !ok {
				errs = append(errs, ValidationError{
					Field:   "pattern." + name + ".regexp",
					Message: fmt.Sprintf("unknown reference {%s}", ref),
					Code:    ErrUnknownReference,
				})
			}
		}
	}

	// E111: references must not form a cycle
	for _, cycle := range AnalyzeCycles(c) {
		errs = append(errs, ValidationError{
			Field:   "pattern." + cycle.Path[0],
			Message: cycle.Message,
			Code:    ErrReferenceCycle,
		})
	}

	return errs
}
