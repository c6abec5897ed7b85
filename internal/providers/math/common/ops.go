package common

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// Outcome labels recorded for every evaluation
const (
	OutcomeOK          = "ok"
	OutcomeUndefined   = "undefined"
	OutcomeConvergence = "convergence_error"
	OutcomeError       = "error"
)

// Observer receives one record per engine evaluation
type Observer interface {
	RecordEvaluation(function, region, outcome string, iterations int)
}

type nopObserver struct{}

func (nopObserver) RecordEvaluation(string, string, string, int) {}

// MathOps provides common math helpers
type MathOps struct {
	Evaluator gamma.Evaluator
	Observer  Observer
	Logger    *zap.Logger
}

// NewMathOps creates shared state for the math modules. Nil observer and
// logger are replaced with no-ops.
func NewMathOps(ev gamma.Evaluator, observer Observer, logger *zap.Logger) *MathOps {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MathOps{Evaluator: ev, Observer: observer, Logger: logger}
}

// EvaluatorFor applies optional "epsilon" and "maxIterations" parameters on
// top of the configured evaluator. Requests may tighten the iteration cap but
// never raise it.
func (m *MathOps) EvaluatorFor(params map[string]interface{}) (gamma.Evaluator, error) {
	ev := m.Evaluator

	if eps, ok := GetNumber(params, "epsilon"); ok {
		if !(eps > 0) || math.IsInf(eps, 0) {
			return ev, fmt.Errorf("epsilon must be a positive number")
		}
		ev.Epsilon = eps
	}

	if limit, ok := GetNumber(params, "maxIterations"); ok {
		if limit < 0 || limit != math.Trunc(limit) {
			return ev, fmt.Errorf("maxIterations must be a non-negative integer")
		}
		if limit > float64(m.Evaluator.MaxIterations) {
			return ev, fmt.Errorf("maxIterations exceeds limit of %d", m.Evaluator.MaxIterations)
		}
		ev.MaxIterations = int(limit)
	}

	return ev, nil
}

// EngineFailure converts an engine error into a failed result and records it
func (m *MathOps) EngineFailure(function string, err error, fields ...zap.Field) (*types.Result, error) {
	outcome := OutcomeError
	var convErr *gamma.ConvergenceError
	if errors.As(err, &convErr) {
		outcome = OutcomeConvergence
	}
	m.Observer.RecordEvaluation(function, gamma.RegionNone.String(), outcome, 0)
	m.Logger.Warn("Evaluation failed", append(fields, zap.String("function", function), zap.Error(err))...)
	return Failure(fmt.Sprintf("%s: %v", function, err))
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// RequireNumbers extracts every named parameter or reports the first missing one
func RequireNumbers(params map[string]interface{}, keys ...string) ([]float64, error) {
	out := make([]float64, 0, len(keys))
	for _, key := range keys {
		v, ok := GetNumber(params, key)
		if !ok {
			return nil, fmt.Errorf("%s parameter required", key)
		}
		out = append(out, v)
	}
	return out, nil
}

// ValidateNumber checks if a number is valid (not NaN or Inf)
func ValidateNumber(x float64, name string) error {
	if math.IsNaN(x) {
		return fmt.Errorf("%s is NaN", name)
	}
	if math.IsInf(x, 0) {
		return fmt.Errorf("%s is infinite", name)
	}
	return nil
}
