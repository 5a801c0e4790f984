package workspace

import (
	"errors"
	"fmt"
)

// ErrInvalidName is returned when a file name would escape the workspace.
var ErrInvalidName = errors.New("invalid artifact file name")

// OpError wraps a filesystem failure with the operation and path involved.
// Its message carries the underlying OS error text.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := "workspace " + e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
