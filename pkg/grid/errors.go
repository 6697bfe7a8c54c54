package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid matches every *InvalidGridError via errors.Is.
	ErrInvalidGrid = errors.New("paramgrid: invalid grid")
	// ErrIndexOutOfRange matches every *IndexError via errors.Is.
	ErrIndexOutOfRange = errors.New("paramgrid: index out of range")
)

// InvalidGridError reports a node that is neither a choice list nor a nested
// mapping, an empty choice list, a mapping that contains itself, or a grid
// whose combination count does not fit in an int.
type InvalidGridError struct {
	Path   Path
	Value  any
	Reason string
}

func (e *InvalidGridError) Error() string {
	msg := "paramgrid: invalid grid"
	if len(e.Path) > 0 {
		msg += fmt.Sprintf(" at %q", e.Path.String())
	}
	msg += ": " + e.Reason
	if e.Reason == reasonUnsupported || e.Reason == reasonNotMapping {
		msg += fmt.Sprintf(" (got %T)", e.Value)
	}
	return msg
}

// Is lets errors.Is(err, ErrInvalidGrid) match.
func (e *InvalidGridError) Is(target error) bool {
	return target == ErrInvalidGrid
}

// IndexError is returned by At for indices outside [0, Len()).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("paramgrid: index %d out of range [0, %d)", e.Index, e.Len)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

const (
	reasonUnsupported = "expected a list of candidates or a nested mapping"
	reasonEmptyList   = "choice list must not be empty"
	reasonOverflow    = "combination count overflows int"
	reasonNotMapping  = "expected a mapping"
	reasonCycle       = "mapping contains itself"
)
