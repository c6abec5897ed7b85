// Package cmd implements the gammactl command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// NewRootCmd builds the gammactl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gammactl",
		Short: "Regularized incomplete gamma functions from the command line",
		Long: `gammactl evaluates the regularized incomplete gamma functions

  P(a,x) = γ(a,x)/Γ(a)   and   Q(a,x) = Γ(a,x)/Γ(a) = 1 - P(a,x)

locally or against a running incgamma server, and checks the engine
against reference tables in YAML, TOML or JSON.`,
		SilenceUsage: true,
	}

	root.AddCommand(newEvalCmd("p", "Evaluate the lower function P(a,x)", gamma.FunctionP))
	root.AddCommand(newEvalCmd("q", "Evaluate the upper function Q(a,x)", gamma.FunctionQ))
	root.AddCommand(newVerifyCmd())

	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
