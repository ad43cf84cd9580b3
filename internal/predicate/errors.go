package predicate

import "errors"

// ErrInvalidArgument is returned when a predicate cannot be constructed from
// the given arguments, such as a range whose lower bound exceeds its upper bound.
var ErrInvalidArgument = errors.New("invalid predicate argument")

// IsInvalidArgument returns true if err wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
