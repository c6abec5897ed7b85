package gamma

import "github.com/GriffinCanCode/incgamma/pkg/fraction"

// ConvergenceError is shared with the continued fraction evaluator so the
// series and fraction paths fail the same way.
type ConvergenceError = fraction.ConvergenceError

// ErrConvergence matches every *ConvergenceError via errors.Is.
var ErrConvergence = fraction.ErrConvergence
