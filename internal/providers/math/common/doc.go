// Package common holds the helpers shared by the math provider modules.
//
// MathOps carries the configured gamma.Evaluator, the evaluation Observer
// and the logger. The helpers turn tool parameters into numbers and engine
// outcomes into types.Result values:
//   - Success / Failure: Consistent result format
//   - GetNumber / OptionalNumber: Parameter extraction with type coercion
//   - ValidateNumber: NaN and Infinity guards
//   - EvaluatorFor: Per-call epsilon / maxIterations overrides
//
// Failures are reported in the result, never as a Go error, so a caller
// always receives a JSON body describing what went wrong.
//
// Example Usage:
//
//	ops := common.NewMathOps(gamma.Default(), nil, nil)
//	special := &advanced.SpecialOps{MathOps: ops}
//	result, err := special.RegularizedP(ctx, params, appCtx)
package common
