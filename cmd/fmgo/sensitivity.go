package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/logging"
	"github.com/rgehrsitz/fmgo/internal/output"
)

// defaultSweepSpread is how far the sweep reaches on each side of the base
// rate when --min or --max is not given, in percentage points
const defaultSweepSpread = 2.0

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep the interest rate of one request",
		Long: `Recompute a request across an interest-rate range and report the months to
the target (TIME_TO_TARGET) or the required contribution (CONTRIBUTION_FOR_TERM)
at each rate.

Examples:
  fmgo sensitivity --contribution 500 --rate 10
  fmgo sensitivity --rate 10 --min 6 --max 14 --steps 9
  fmgo sensitivity --input request.yaml --format csv`,
		Args: cobra.NoArgs,
		RunE: runSensitivityAnalysis,
	}
	addRequestFlags(cmd)
	cmd.Flags().Float64("min", 0, "Lowest rate of the sweep (default: base rate - 2)")
	cmd.Flags().Float64("max", 0, "Highest rate of the sweep (default: base rate + 2)")
	cmd.Flags().Int("steps", 5, "Number of rates in the sweep")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	return cmd
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	rt, err := newRuntimeContext(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(rt.logger)

	req, err := requestFromFlags(cmd, config.NewInputParser(), rt.locale)
	if err != nil {
		return err
	}

	minRate := math.Max(req.InterestRate-defaultSweepSpread, 0)
	maxRate := req.InterestRate + defaultSweepSpread
	if cmd.Flags().Changed("min") {
		minRate, _ = cmd.Flags().GetFloat64("min")
	}
	if cmd.Flags().Changed("max") {
		maxRate, _ = cmd.Flags().GetFloat64("max")
	}
	steps, _ := cmd.Flags().GetInt("steps")

	analyzer := calculation.NewSensitivityAnalyzer(rt.engine)
	sweep, err := analyzer.SweepRate(cmd.Context(), req, minRate, maxRate, steps)
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	formatted, err := output.NewSensitivityFormatter(format).FormatSensitivity(sweep, rt.locale)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
