package store

import "errors"

// ErrNotFound is returned when no automaton has the requested name.
var ErrNotFound = errors.New("automaton not found")

// IsNotFound returns true if err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
