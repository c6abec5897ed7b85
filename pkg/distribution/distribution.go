package distribution

import (
	"math"

	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// ChiSquaredCDF returns Pr(X <= x) for X ~ χ²(k).
func ChiSquaredCDF(x, k float64) (float64, error) {
	return ChiSquaredCDFWith(gamma.Default(), x, k)
}

// ChiSquaredCDFWith is ChiSquaredCDF using ev.
func ChiSquaredCDFWith(ev gamma.Evaluator, x, k float64) (float64, error) {
	switch {
	case math.IsNaN(x) || math.IsNaN(k) || k <= 0:
		return math.NaN(), nil
	case x <= 0:
		return 0, nil
	}
	return ev.P(k/2, x/2)
}

// ChiSquaredSurvival returns Pr(X > x) for X ~ χ²(k).
func ChiSquaredSurvival(x, k float64) (float64, error) {
	return ChiSquaredSurvivalWith(gamma.Default(), x, k)
}

// ChiSquaredSurvivalWith is ChiSquaredSurvival using ev.
func ChiSquaredSurvivalWith(ev gamma.Evaluator, x, k float64) (float64, error) {
	switch {
	case math.IsNaN(x) || math.IsNaN(k) || k <= 0:
		return math.NaN(), nil
	case x <= 0:
		return 1, nil
	}
	return ev.Q(k/2, x/2)
}

// PoissonCDF returns Pr(N <= k) for N ~ Poisson(lambda). Non-integer k is
// floored.
func PoissonCDF(k, lambda float64) (float64, error) {
	return PoissonCDFWith(gamma.Default(), k, lambda)
}

// PoissonCDFWith is PoissonCDF using ev.
func PoissonCDFWith(ev gamma.Evaluator, k, lambda float64) (float64, error) {
	switch {
	case math.IsNaN(k) || math.IsNaN(lambda) || lambda < 0:
		return math.NaN(), nil
	case k < 0:
		return 0, nil
	case lambda == 0:
		return 1, nil
	}
	return ev.Q(math.Floor(k)+1, lambda)
}

// GammaCDF returns Pr(X <= x) for X ~ Gamma(shape, rate).
func GammaCDF(x, shape, rate float64) (float64, error) {
	return GammaCDFWith(gamma.Default(), x, shape, rate)
}

// GammaCDFWith is GammaCDF using ev.
func GammaCDFWith(ev gamma.Evaluator, x, shape, rate float64) (float64, error) {
	if invalidGamma(x, shape, rate) {
		return math.NaN(), nil
	}
	if x <= 0 {
		return 0, nil
	}
	return ev.P(shape, rate*x)
}

// GammaSurvival returns Pr(X > x) for X ~ Gamma(shape, rate).
func GammaSurvival(x, shape, rate float64) (float64, error) {
	return GammaSurvivalWith(gamma.Default(), x, shape, rate)
}

// GammaSurvivalWith is GammaSurvival using ev.
func GammaSurvivalWith(ev gamma.Evaluator, x, shape, rate float64) (float64, error) {
	if invalidGamma(x, shape, rate) {
		return math.NaN(), nil
	}
	if x <= 0 {
		return 1, nil
	}
	return ev.Q(shape, rate*x)
}

func invalidGamma(x, shape, rate float64) bool {
	return math.IsNaN(x) || math.IsNaN(shape) || math.IsNaN(rate) || shape <= 0 || rate <= 0
}
