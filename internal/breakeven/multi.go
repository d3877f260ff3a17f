package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
)

// OptimizeAllTargets searches every field of the base request in turn and
// compares the break-even values. A field that cannot reach the target
// within the constraints is reported in Failures.
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	base domain.CalculationRequest,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	targets := []OptimizationTarget{
		OptimizeRate,
		OptimizeInitialValue,
		OptimizeContribution,
	}

	mdResult := &MultiDimensionalResult{}
	for _, target := range targets {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Base:        base,
			Target:      target,
			Constraints: constraints,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if mdResult.Failures == nil {
				mdResult.Failures = map[OptimizationTarget]string{}
			}
			mdResult.Failures[target] = err.Error()
			s.logger().Warnf("break-even search for %s failed: %v", target, err)
			continue
		}
		mdResult.Results = append(mdResult.Results, *result)
	}

	if len(mdResult.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all_targets",
			Message:   "no successful optimizations found",
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)
	return mdResult, nil
}

// generateMultiDimensionalRecommendations phrases each break-even value as an action
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	locale := s.engineConfig().Locale
	var recommendations []string

	first := result.Results[0]
	years := first.Request.Constraints.HorizonYears
	if first.BaseResult != nil && first.BaseResult.GoalReached {
		recommendations = append(recommendations,
			fmt.Sprintf("Already on track: the current plan reaches the target in %d months, within %d years", first.BaseResult.TotalMonths, years))
	}

	for _, res := range result.Results {
		req := res.Request.Base
		months := res.Result.TotalMonths
		switch res.Request.Target {
		case OptimizeRate:
			recommendations = append(recommendations, fmt.Sprintf("Interest rate: at least %s (%+.2f points) reaches the target in %d months",
				output.FormatRate(*res.OptimalRate, req.RatePeriod, locale), res.DiffFromBase.InexactFloat64(), months))
		case OptimizeInitialValue:
			recommendations = append(recommendations, fmt.Sprintf("Initial value: %s invested up front (%s more) reaches the target in %d months",
				output.FormatCurrency(res.Value(), locale), output.FormatCurrency(decimal.Max(res.DiffFromBase, decimal.Zero), locale), months))
		case OptimizeContribution:
			recommendations = append(recommendations, fmt.Sprintf("Monthly contribution: %s (%s more) reaches the target in %d months",
				output.FormatCurrency(res.Value(), locale), output.FormatCurrency(decimal.Max(res.DiffFromBase, decimal.Zero), locale), months))
		}
	}

	return recommendations
}
