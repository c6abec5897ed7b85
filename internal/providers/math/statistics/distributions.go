package statistics

import (
	"context"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/incgamma/internal/providers/math/common"
	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/distribution"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// DistributionOps handles gamma-family cumulative distribution functions
type DistributionOps struct {
	*common.MathOps
}

// GetTools returns distribution tool definitions
func (d *DistributionOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.chisquared.cdf",
			Name:        "Chi-Squared CDF",
			Description: "Calculate Pr(X <= x) for X ~ χ²(k)",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Statistic value", Required: true},
				{Name: "k", Type: "number", Description: "Degrees of freedom (> 0)", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.chisquared.sf",
			Name:        "Chi-Squared Survival",
			Description: "Calculate Pr(X > x) for X ~ χ²(k), the p-value of a chi-squared test",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Statistic value", Required: true},
				{Name: "k", Type: "number", Description: "Degrees of freedom (> 0)", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.poisson.cdf",
			Name:        "Poisson CDF",
			Description: "Calculate Pr(N <= k) for N ~ Poisson(λ)",
			Parameters: []types.Parameter{
				{Name: "k", Type: "number", Description: "Event count (floored)", Required: true},
				{Name: "lambda", Type: "number", Description: "Mean rate (>= 0)", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.gammadist.cdf",
			Name:        "Gamma Distribution CDF",
			Description: "Calculate Pr(X <= x) for X ~ Gamma(shape, rate)",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Value", Required: true},
				{Name: "shape", Type: "number", Description: "Shape (> 0)", Required: true},
				{Name: "rate", Type: "number", Description: "Rate (> 0)", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.gammadist.sf",
			Name:        "Gamma Distribution Survival",
			Description: "Calculate Pr(X > x) for X ~ Gamma(shape, rate)",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Value", Required: true},
				{Name: "shape", Type: "number", Description: "Shape (> 0)", Required: true},
				{Name: "rate", Type: "number", Description: "Rate (> 0)", Required: true},
			},
			Returns: "number",
		},
	}
}

// ChiSquaredCDF calculates the chi-squared CDF
func (d *DistributionOps) ChiSquaredCDF(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.run("chisquared.cdf", params, []string{"x", "k"}, func(ev gamma.Evaluator, v []float64) (float64, error) {
		return distribution.ChiSquaredCDFWith(ev, v[0], v[1])
	})
}

// ChiSquaredSurvival calculates the chi-squared survival function
func (d *DistributionOps) ChiSquaredSurvival(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.run("chisquared.sf", params, []string{"x", "k"}, func(ev gamma.Evaluator, v []float64) (float64, error) {
		return distribution.ChiSquaredSurvivalWith(ev, v[0], v[1])
	})
}

// PoissonCDF calculates the Poisson CDF
func (d *DistributionOps) PoissonCDF(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.run("poisson.cdf", params, []string{"k", "lambda"}, func(ev gamma.Evaluator, v []float64) (float64, error) {
		return distribution.PoissonCDFWith(ev, v[0], v[1])
	})
}

// GammaCDF calculates the gamma distribution CDF
func (d *DistributionOps) GammaCDF(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.run("gammadist.cdf", params, []string{"x", "shape", "rate"}, func(ev gamma.Evaluator, v []float64) (float64, error) {
		return distribution.GammaCDFWith(ev, v[0], v[1], v[2])
	})
}

// GammaSurvival calculates the gamma distribution survival function
func (d *DistributionOps) GammaSurvival(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.run("gammadist.sf", params, []string{"x", "shape", "rate"}, func(ev gamma.Evaluator, v []float64) (float64, error) {
		return distribution.GammaSurvivalWith(ev, v[0], v[1], v[2])
	})
}

type distFunc func(ev gamma.Evaluator, values []float64) (float64, error)

func (d *DistributionOps) run(name string, params map[string]interface{}, keys []string, fn distFunc) (*types.Result, error) {
	values, err := common.RequireNumbers(params, keys...)
	if err != nil {
		return common.Failure(err.Error())
	}

	ev, err := d.EvaluatorFor(params)
	if err != nil {
		return common.Failure(err.Error())
	}

	result, err := fn(ev, values)
	if err != nil {
		return d.EngineFailure(name, err, zap.Float64s("params", values))
	}

	if gomath.IsNaN(result) {
		d.Observer.RecordEvaluation(name, gamma.RegionNone.String(), common.OutcomeUndefined, 0)
		return common.Failure(fmt.Sprintf("%s undefined for %v = %v", name, keys, values))
	}

	d.Observer.RecordEvaluation(name, gamma.RegionNone.String(), common.OutcomeOK, 0)
	return common.Success(map[string]interface{}{"result": result})
}
