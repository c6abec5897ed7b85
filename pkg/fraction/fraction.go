package fraction

import "math"

// tiny replaces zero denominators so the Lentz recurrences stay finite.
const tiny = 1e-50

// Term returns the n-th partial numerator or denominator at argument x.
type Term func(n int, x float64) float64

// ContinuedFraction is a0 + b1/(a1 + b2/(a2 + ...)).
// A yields the partial denominators (n >= 0), B the partial numerators (n >= 1).
type ContinuedFraction struct {
	A Term
	B Term
}

// Result is a converged value together with the number of terms consumed.
type Result struct {
	Value      float64
	Iterations int
}

// Evaluate returns the converged value of the fraction at x.
func (cf ContinuedFraction) Evaluate(x, epsilon float64, maxIterations int) (float64, error) {
	res, err := cf.Converge(x, epsilon, maxIterations)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Converge runs the modified Lentz algorithm. It stops when the latest
// convergent ratio is within epsilon of one. Running past maxIterations
// terms yields a *ConvergenceError; an infinite or NaN convergent yields a
// *DivergenceError.
func (cf ContinuedFraction) Converge(x, epsilon float64, maxIterations int) (Result, error) {
	hPrev := zeroGuard(cf.A(0, x))

	n := 1
	dPrev := 0.0
	cPrev := hPrev
	hN := hPrev

	for n <= maxIterations {
		a := cf.A(n, x)
		b := cf.B(n, x)

		dN := zeroGuard(a + b*dPrev)
		cN := zeroGuard(a + b/cPrev)

		dN = 1 / dN
		deltaN := cN * dN
		hN = hPrev * deltaN

		if math.IsInf(hN, 0) || math.IsNaN(hN) {
			return Result{}, &DivergenceError{X: x, Value: hN}
		}

		if math.Abs(deltaN-1) < epsilon {
			break
		}

		dPrev = dN
		cPrev = cN
		hPrev = hN
		n++
	}

	if n > maxIterations {
		return Result{}, &ConvergenceError{MaxIterations: maxIterations}
	}

	return Result{Value: hN, Iterations: n}, nil
}

func zeroGuard(v float64) float64 {
	if math.Abs(v) <= tiny {
		return tiny
	}
	return v
}
