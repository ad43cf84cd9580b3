package pattern

import (
	"errors"
	"fmt"
)

// ParseError reports malformed pattern syntax.
type ParseError struct {
	// Pattern is the (normalized) input.
	Pattern string

	// Offset is the rune offset of the offending character.
	Offset int

	// Message is a human-readable cause.
	Message string

	// Err is the underlying error, if any, such as a predicate construction
	// failure or a resolver error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error at offset %d in %q: %s: %v", e.Offset, e.Pattern, e.Message, e.Err)
	}
	return fmt.Sprintf("parse error at offset %d in %q: %s", e.Offset, e.Pattern, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Offset returns the offset carried by a wrapped *ParseError, or -1.
func Offset(err error) int {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Offset
	}
	return -1
}
