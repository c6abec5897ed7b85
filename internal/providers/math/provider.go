package math

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/incgamma/internal/providers/math/advanced"
	"github.com/GriffinCanCode/incgamma/internal/providers/math/common"
	"github.com/GriffinCanCode/incgamma/internal/providers/math/statistics"
	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// Provider implements the incomplete gamma tools
type Provider struct {
	special       *advanced.SpecialOps
	distributions *statistics.DistributionOps
}

// NewProvider creates a math provider evaluating with ev. Observer and
// logger may be nil.
func NewProvider(ev gamma.Evaluator, observer common.Observer, logger *zap.Logger) *Provider {
	ops := common.NewMathOps(ev, observer, logger)

	return &Provider{
		special:       &advanced.SpecialOps{MathOps: ops},
		distributions: &statistics.DistributionOps{MathOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (m *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, m.special.GetTools()...)
	tools = append(tools, m.distributions.GetTools()...)

	return types.Service{
		ID:          "math",
		Name:        "Math Service",
		Description: "Regularized incomplete gamma functions and the distributions built on them",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"special",
			"distributions",
		},
		Tools: tools,
	}
}

// Execute routes to appropriate module
func (m *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	// Special functions
	case "math.gamma.p":
		return m.special.RegularizedP(ctx, params, appCtx)
	case "math.gamma.q":
		return m.special.RegularizedQ(ctx, params, appCtx)
	case "math.lgamma":
		return m.special.LogGamma(ctx, params, appCtx)
	case "math.gamma":
		return m.special.Gamma(ctx, params, appCtx)

	// Distributions
	case "math.chisquared.cdf":
		return m.distributions.ChiSquaredCDF(ctx, params, appCtx)
	case "math.chisquared.sf":
		return m.distributions.ChiSquaredSurvival(ctx, params, appCtx)
	case "math.poisson.cdf":
		return m.distributions.PoissonCDF(ctx, params, appCtx)
	case "math.gammadist.cdf":
		return m.distributions.GammaCDF(ctx, params, appCtx)
	case "math.gammadist.sf":
		return m.distributions.GammaSurvival(ctx, params, appCtx)

	default:
		return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
