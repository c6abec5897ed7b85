package fraction

import (
	"errors"
	"fmt"
)

// ErrConvergence matches every *ConvergenceError via errors.Is.
var ErrConvergence = errors.New("fraction: failed to converge")

// ErrDivergence matches every *DivergenceError via errors.Is.
var ErrDivergence = errors.New("fraction: convergents diverged")

// ConvergenceError reports that an iterative evaluation used up its
// iteration budget without meeting the epsilon criterion.
type ConvergenceError struct {
	MaxIterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("failed to converge: maximal count (%d) exceeded", e.MaxIterations)
}

// Is reports whether target is ErrConvergence.
func (e *ConvergenceError) Is(target error) bool {
	return target == ErrConvergence
}

// DivergenceError reports a convergent that became infinite or NaN.
type DivergenceError struct {
	X     float64
	Value float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("continued fraction diverged to %v for value %v", e.Value, e.X)
}

// Is reports whether target is ErrDivergence.
func (e *DivergenceError) Is(target error) bool {
	return target == ErrDivergence
}
