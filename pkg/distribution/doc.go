// Package distribution evaluates cumulative distribution functions that
// reduce to the regularized incomplete gamma functions:
//
//	chi-squared(k):      F(x) = P(k/2, x/2)
//	Poisson(λ):          F(k) = Q(⌊k⌋+1, λ)
//	Gamma(shape, rate):  F(x) = P(shape, rate·x)
//
// Each function has a form taking an explicit gamma.Evaluator so callers can
// choose the convergence limits. Invalid parameters give NaN; convergence
// failures surface as *gamma.ConvergenceError.
package distribution
