package gamma

// RegularizedP returns P(a, x) with DefaultEpsilon and DefaultMaxIterations.
func RegularizedP(a, x float64) (float64, error) {
	return Default().P(a, x)
}

// RegularizedPWithLimits returns P(a, x), stopping once the latest series
// term is within epsilon of the partial sum. It fails with a
// *ConvergenceError after maxIterations terms.
func RegularizedPWithLimits(a, x, epsilon float64, maxIterations int) (float64, error) {
	return Default().WithLimits(epsilon, maxIterations).P(a, x)
}

// RegularizedQ returns Q(a, x) = 1 - P(a, x) with DefaultEpsilon and
// DefaultMaxIterations.
func RegularizedQ(a, x float64) (float64, error) {
	return Default().Q(a, x)
}

// RegularizedQWithLimits returns Q(a, x) using the given convergence limits.
func RegularizedQWithLimits(a, x, epsilon float64, maxIterations int) (float64, error) {
	return Default().WithLimits(epsilon, maxIterations).Q(a, x)
}
