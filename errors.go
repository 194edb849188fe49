package bucket

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks construction/selection contract violations:
	// empty bucket name, empty engine name, nil factory.
	ErrInvalidArgument = errors.New("bucket: invalid argument")

	// ErrUnknownEngine marks an engine name that resolves to neither a
	// built-in nor a registered factory.
	ErrUnknownEngine = errors.New("bucket: unknown engine")
)

// SelectError reports a failed engine selection. Err is ErrUnknownEngine when
// the name did not resolve; factory construction errors are carried unchanged.
type SelectError struct {
	Engine string
	Err    error
}

func (e *SelectError) Error() string {
	return fmt.Sprintf("bucket: select engine %q: %v", e.Engine, e.Err)
}

func (e *SelectError) Unwrap() error { return e.Err }
