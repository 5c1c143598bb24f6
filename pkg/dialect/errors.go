package dialect

import (
	"errors"
	"fmt"
)

// ErrUnsupported is matched by errors.Is for every UnsupportedError.
var ErrUnsupported = errors.New("unsupported by dialect")

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// ErrIncomplete is returned when a tree lacks a part its statement needs
// to be written as SQL, such as an INSERT without rows.
var ErrIncomplete = errors.New("incomplete statement")

// Incomplete wraps ErrIncomplete with a description of what is missing.
func Incomplete(what string) error {
	return fmt.Errorf("%w: %s", ErrIncomplete, what)
}

// UnsupportedError is returned by a rendering hook for a construct the
// dialect cannot express.
type UnsupportedError struct {
	Dialect   string
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("dialect %s cannot render %s", e.Dialect, e.Construct)
}

// Is makes errors.Is(err, ErrUnsupported) hold.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Unsupported builds an UnsupportedError.
func Unsupported(dialect, construct string) error {
	return &UnsupportedError{Dialect: dialect, Construct: construct}
}
