// Package fraction evaluates generic continued fractions of the form
//
//	a0 + b1/(a1 + b2/(a2 + b3/(a3 + ...)))
//
// using the modified Lentz algorithm.
//
// The caller supplies the partial denominators aₙ and partial numerators bₙ
// as plain functions of the term index n and the argument x. Evaluation stops
// once the ratio of successive convergents is within epsilon of one, or fails
// with a *ConvergenceError after maxIterations terms.
//
// Example Usage:
//
//	golden := fraction.ContinuedFraction{
//	    A: func(int, float64) float64 { return 1 },
//	    B: func(int, float64) float64 { return 1 },
//	}
//	phi, err := golden.Evaluate(0, 1e-15, 1000)
package fraction
