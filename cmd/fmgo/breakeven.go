package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fmgo/internal/breakeven"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/logging"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Find the smallest rate, lump sum or contribution that reaches the target in time",
		Long: `Search for the smallest interest rate, initial value or monthly contribution
with which the request reaches the target within a horizon. The other fields
of the request stay as given.

The horizon defaults to --years.

Examples:
  fmgo break-even --contribution 500 --rate 10 --years 25
  fmgo break-even --target contribution --years 10 --rate 10
  fmgo break-even --target rate --horizon 20 --format json`,
		Args: cobra.NoArgs,
		RunE: runBreakEven,
	}
	addRequestFlags(cmd)
	cmd.Flags().String("target", string(breakeven.OptimizeAll), "Field to search (rate, initial_value, contribution, all)")
	cmd.Flags().Int("horizon", 0, "Years within which the target must be reached")
	cmd.Flags().Float64("min-rate", 0, "Lowest rate searched")
	cmd.Flags().Float64("max-rate", 100, "Highest rate searched")
	cmd.Flags().Float64("max-initial", 0, "Highest initial value searched (default: the target)")
	cmd.Flags().Float64("max-contribution", 0, "Highest contribution searched (default: the target)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func runBreakEven(cmd *cobra.Command, args []string) error {
	rt, err := newRuntimeContext(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(rt.logger)

	req, err := requestFromFlags(cmd, config.NewInputParser(), rt.locale)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	targetName, _ := flags.GetString("target")
	target, err := breakeven.ParseTarget(targetName)
	if err != nil {
		return err
	}

	horizon, _ := flags.GetInt("horizon")
	if horizon == 0 {
		horizon = req.TargetYears
	}
	constraints := breakeven.DefaultConstraints(horizon)
	*constraints.MinRate, _ = flags.GetFloat64("min-rate")
	*constraints.MaxRate, _ = flags.GetFloat64("max-rate")
	if flags.Changed("max-initial") {
		v, _ := flags.GetFloat64("max-initial")
		constraints.MaxInitialValue = &v
	}
	if flags.Changed("max-contribution") {
		v, _ := flags.GetFloat64("max-contribution")
		constraints.MaxContribution = &v
	}

	solver := breakeven.NewDefaultSolver(rt.engine)
	format, _ := flags.GetString("format")
	table := &breakeven.TableFormatter{Locale: rt.locale}
	jsonFormatter := &breakeven.JSONFormatter{Pretty: true}

	var formatted string
	if target == breakeven.OptimizeAll {
		result, err := solver.OptimizeAllTargets(cmd.Context(), req, constraints)
		if err != nil {
			return fmt.Errorf("break-even analysis failed: %w", err)
		}
		switch format {
		case "table":
			formatted = table.FormatMultiDimensional(result)
		case "json":
			formatted, err = jsonFormatter.FormatMultiDimensional(result)
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}
		if err != nil {
			return err
		}
	} else {
		result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
			Base:        req,
			Target:      target,
			Constraints: constraints,
		})
		if err != nil {
			return fmt.Errorf("break-even analysis failed: %w", err)
		}
		switch format {
		case "table":
			formatted = table.Format(result)
		case "json":
			formatted, err = jsonFormatter.Format(result)
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
