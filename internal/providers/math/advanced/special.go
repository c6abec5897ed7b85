package advanced

import (
	"context"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/incgamma/internal/providers/math/common"
	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// SpecialOps handles the gamma family of special functions
type SpecialOps struct {
	*common.MathOps
}

var limitParameters = []types.Parameter{
	{Name: "epsilon", Type: "number", Description: "Relative convergence threshold (default: configured)", Required: false},
	{Name: "maxIterations", Type: "number", Description: "Iteration cap, at most the configured limit", Required: false},
}

func withLimits(params ...types.Parameter) []types.Parameter {
	return append(params, limitParameters...)
}

// GetTools returns special function tool definitions
func (sp *SpecialOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.gamma.p",
			Name:        "Regularized Lower Incomplete Gamma",
			Description: "Calculate P(a,x) = γ(a,x)/Γ(a)",
			Parameters: withLimits(
				types.Parameter{Name: "a", Type: "number", Description: "Shape parameter (> 0)", Required: true},
				types.Parameter{Name: "x", Type: "number", Description: "Argument (>= 0)", Required: true},
			),
			Returns: "number",
		},
		{
			ID:          "math.gamma.q",
			Name:        "Regularized Upper Incomplete Gamma",
			Description: "Calculate Q(a,x) = Γ(a,x)/Γ(a) = 1 - P(a,x)",
			Parameters: withLimits(
				types.Parameter{Name: "a", Type: "number", Description: "Shape parameter (> 0)", Required: true},
				types.Parameter{Name: "x", Type: "number", Description: "Argument (>= 0)", Required: true},
			),
			Returns: "number",
		},
		{
			ID:          "math.lgamma",
			Name:        "Log Gamma",
			Description: "Calculate natural log of gamma function ln(Γ(x))",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Input value", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.gamma",
			Name:        "Gamma Function",
			Description: "Calculate gamma function Γ(x)",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Input value", Required: true},
			},
			Returns: "number",
		},
	}
}

// RegularizedP calculates P(a,x)
func (sp *SpecialOps) RegularizedP(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return sp.regularized(gamma.FunctionP, params)
}

// RegularizedQ calculates Q(a,x)
func (sp *SpecialOps) RegularizedQ(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return sp.regularized(gamma.FunctionQ, params)
}

func (sp *SpecialOps) regularized(fn gamma.Function, params map[string]interface{}) (*types.Result, error) {
	nums, err := common.RequireNumbers(params, "a", "x")
	if err != nil {
		return common.Failure(err.Error())
	}
	a, x := nums[0], nums[1]

	ev, err := sp.EvaluatorFor(params)
	if err != nil {
		return common.Failure(err.Error())
	}

	var res gamma.Evaluation
	if fn == gamma.FunctionP {
		res, err = ev.EvaluateP(a, x)
	} else {
		res, err = ev.EvaluateQ(a, x)
	}
	if err != nil {
		return sp.EngineFailure(fn.String(), err, zap.Float64("a", a), zap.Float64("x", x))
	}

	if gomath.IsNaN(res.Value) {
		sp.Observer.RecordEvaluation(fn.String(), res.Region.String(), common.OutcomeUndefined, 0)
		return common.Failure(fmt.Sprintf("%s undefined for a=%g, x=%g", fn, a, x))
	}

	sp.Observer.RecordEvaluation(fn.String(), res.Region.String(), common.OutcomeOK, res.Iterations)

	return common.Success(map[string]interface{}{
		"result":     res.Value,
		"region":     res.Region.String(),
		"iterations": res.Iterations,
		"delegated":  res.Delegated(),
	})
}

// LogGamma calculates log gamma function
func (sp *SpecialOps) LogGamma(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, ok := common.GetNumber(params, "x")
	if !ok {
		return common.Failure("x parameter required")
	}

	if err := common.ValidateNumber(x, "x"); err != nil {
		return common.Failure(err.Error())
	}

	lg := sp.Evaluator.LogGamma
	if lg == nil {
		lg = gamma.LogGamma
	}
	result := lg(x)

	if err := common.ValidateNumber(result, "result"); err != nil {
		return common.Failure("lgamma function overflow")
	}

	return common.Success(map[string]interface{}{"result": result})
}

// Gamma calculates gamma function
func (sp *SpecialOps) Gamma(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, ok := common.GetNumber(params, "x")
	if !ok {
		return common.Failure("x parameter required")
	}

	if err := common.ValidateNumber(x, "x"); err != nil {
		return common.Failure(err.Error())
	}

	result := gomath.Gamma(x)

	if err := common.ValidateNumber(result, "result"); err != nil {
		return common.Failure("gamma function overflow")
	}

	return common.Success(map[string]interface{}{"result": result})
}
