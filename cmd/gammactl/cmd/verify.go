package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/incgamma/internal/verify"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

func newVerifyCmd() *cobra.Command {
	var (
		asJSON        bool
		epsilon       float64
		maxIterations int
	)

	c := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check the engine against a reference table",
		Long: `Evaluate every case of a reference table and report the cases outside
tolerance. The table format is chosen by extension: .yaml/.yml, .toml or .json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := verify.LoadFile(args[0])
			if err != nil {
				return err
			}

			ev := gamma.Default()
			ev.Epsilon = epsilon
			if cmd.Flags().Changed("max-iterations") {
				ev.MaxIterations = maxIterations
			}

			report := verify.Run(ev, table)
			if err := printReport(cmd, report, asJSON); err != nil {
				return err
			}
			if !report.Passed() {
				return fmt.Errorf("%d of %d cases failed", len(report.Failures), report.Cases)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	c.Flags().Float64Var(&epsilon, "epsilon", gamma.DefaultEpsilon, "Relative convergence threshold")
	c.Flags().IntVar(&maxIterations, "max-iterations", 0, "Iteration cap (default: unbounded)")

	return c
}

func printReport(cmd *cobra.Command, report *verify.Report, asJSON bool) error {
	w := cmd.OutOrStdout()
	if asJSON {
		data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "run %s: %d cases, %d failed, max abs error %.3g\n",
		report.RunID, report.Cases, len(report.Failures), report.MaxAbsError)
	for _, f := range report.Failures {
		c := f.Case
		if f.Err != "" {
			fmt.Fprintf(w, "  FAIL %s(%g, %g): %s\n", c.Function, c.A, c.X, f.Err)
			continue
		}
		fmt.Fprintf(w, "  FAIL %s(%g, %g) = %.17g, want %.17g (abs error %.3g)\n",
			c.Function, c.A, c.X, f.Got, c.Expected, f.AbsError)
	}
	return nil
}
