package breakeven

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeRequest(initial, contribution, rate float64) domain.CalculationRequest {
	return domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		InitialValue:        initial,
		MonthlyContribution: contribution,
		InterestRate:        rate,
		RatePeriod:          domain.PeriodAnnual,
	}
}

func newTestSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func TestOptimize_Contribution(t *testing.T) {
	base := domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		TargetYears:  10,
		InterestRate: 10,
		RatePeriod:   domain.PeriodAnnual,
	}

	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:   base,
		Target: OptimizeContribution,
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalContribution)
	assert.True(t, result.Success)
	// the closed form gives 5003.4059, so the smallest whole cent is 5003.41
	assert.Equal(t, "5003.41", result.OptimalContribution.String())
	assert.Equal(t, "5003.41", result.DiffFromBase.String())
	assert.Equal(t, 10, result.Request.Constraints.HorizonYears)
	assert.Equal(t, domain.ModeTimeToTarget, result.Request.Base.Mode)
	assert.Equal(t, 120, result.Result.TotalMonths)
	assert.True(t, result.Result.GoalReached)
	assert.False(t, result.BaseResult.GoalReached)
	assert.Contains(t, result.ConvergenceInfo, "converged")
}

func TestOptimize_Rate(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 30},
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalRate)
	assert.Greater(t, *result.OptimalRate, 9.0)
	assert.Less(t, *result.OptimalRate, 10.0)
	assert.True(t, result.DiffFromBase.IsNegative())
	assert.LessOrEqual(t, result.Result.TotalMonths, 360)
	assert.Equal(t, *result.OptimalRate, result.Value().InexactFloat64())
	// the base already reaches the target in 357 months
	assert.True(t, result.BaseResult.GoalReached)
}

func TestOptimize_InitialValue(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeInitialValue,
		Constraints: Constraints{HorizonYears: 20},
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalInitialValue)
	initial := result.OptimalInitialValue.InexactFloat64()
	assert.Greater(t, initial, 94_000.0)
	assert.Less(t, initial, 97_000.0)
	assert.True(t, result.OptimalInitialValue.Equal(result.DiffFromBase))
	assert.True(t, result.OptimalInitialValue.Equal(result.OptimalInitialValue.Round(2)), "not whole cents: %s", result.OptimalInitialValue)
	assert.Equal(t, 240, result.Result.TotalMonths)
}

func TestOptimize_SmallestWholeCent(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(1234.567, 500, 10),
		Target:      OptimizeContribution,
		Constraints: Constraints{HorizonYears: 20},
	})
	require.NoError(t, err)
	require.NotNil(t, result.OptimalContribution)

	solved := *result.OptimalContribution
	assert.True(t, solved.Equal(solved.Round(2)), "not whole cents: %s", solved)
	assert.True(t, result.DiffFromBase.Equal(solved.Sub(decimal.NewFromInt(500))))

	capped := calculation.NewCalculationEngineWithConfig(calculation.EngineConfig{MaxMonths: 240})
	at, err := capped.Compute(context.Background(), timeRequest(1234.567, solved.InexactFloat64(), 10))
	require.NoError(t, err)
	assert.True(t, at.GoalReached)
	assert.Equal(t, result.Result.FinalAmount, at.FinalAmount)

	centBelow := solved.Sub(decimal.New(1, -2)).InexactFloat64()
	below, err := capped.Compute(context.Background(), timeRequest(1234.567, centBelow, 10))
	require.NoError(t, err)
	assert.False(t, below.GoalReached)
}

func TestOptimize_ReachedAtLowerBound(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 5000, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 30},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Zero(t, result.Iterations)
	assert.True(t, result.Value().IsZero())
	assert.Equal(t, "Target reached at the lower bound", result.ConvergenceInfo)
	assert.Equal(t, "-10", result.DiffFromBase.String())
}

func TestOptimize_Unreachable(t *testing.T) {
	_, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 0, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 10},
	})
	require.Error(t, err)

	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "optimize_rate", beErr.Operation)
	assert.Contains(t, err.Error(), "not reachable within 10 years")
}

func TestOptimize_MaxIterations(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:          timeRequest(0, 500, 10),
		Target:        OptimizeContribution,
		Constraints:   Constraints{HorizonYears: 20},
		MaxIterations: 3,
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, "Max iterations (3) reached", result.ConvergenceInfo)
	assert.True(t, result.Result.GoalReached)
}

func TestOptimize_Errors(t *testing.T) {
	solver := newTestSolver()
	ctx := context.Background()

	_, err := solver.Optimize(ctx, OptimizationRequest{
		Base:   timeRequest(0, 500, 10),
		Target: OptimizeRate,
	})
	assert.ErrorContains(t, err, "horizon years must be positive")

	minRate, maxRate := 12.0, 8.0
	_, err = solver.Optimize(ctx, OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 30, MinRate: &minRate, MaxRate: &maxRate},
	})
	assert.ErrorContains(t, err, "min_rate cannot be greater than max_rate")

	_, err = solver.Optimize(ctx, OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeAll,
		Constraints: Constraints{HorizonYears: 30},
	})
	assert.ErrorContains(t, err, "unsupported optimization target")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = solver.Optimize(cancelled, OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 30},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("initial_value")
	require.NoError(t, err)
	assert.Equal(t, OptimizeInitialValue, target)

	_, err = ParseTarget("tsp_rate")
	assert.Error(t, err)
}

func TestOptimizeAllTargets(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngineWithConfig(calculation.EngineConfig{Locale: domain.LocalePortuguese}))

	result, err := solver.OptimizeAllTargets(context.Background(), timeRequest(0, 500, 10), Constraints{HorizonYears: 25})
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.Empty(t, result.Failures)
	assert.Equal(t, OptimizeRate, result.Results[0].Request.Target)
	assert.Equal(t, OptimizeInitialValue, result.Results[1].Request.Target)
	assert.Equal(t, OptimizeContribution, result.Results[2].Request.Target)

	require.Len(t, result.Recommendations, 3)
	assert.Contains(t, result.Recommendations[0], "a.a.")
	assert.Contains(t, result.Recommendations[2], "R$ ")
}

func TestOptimizeAllTargets_PartialFailure(t *testing.T) {
	maxContribution := 100.0
	result, err := newTestSolver().OptimizeAllTargets(context.Background(), timeRequest(0, 500, 10), Constraints{
		HorizonYears:    20,
		MaxContribution: &maxContribution,
	})
	require.NoError(t, err)

	assert.Len(t, result.Results, 2)
	require.Contains(t, result.Failures, OptimizeContribution)
	assert.Contains(t, result.Failures[OptimizeContribution], "not reachable")
}

func TestOptimizeAllTargets_NothingReachable(t *testing.T) {
	zero, one := 0.0, 1.0
	_, err := newTestSolver().OptimizeAllTargets(context.Background(), timeRequest(0, 0, 0), Constraints{
		HorizonYears:    5,
		MaxRate:         &zero,
		MaxInitialValue: &one,
		MaxContribution: &one,
	})
	assert.ErrorContains(t, err, "no successful optimizations found")
}

func TestTableFormatter(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeContribution,
		Constraints: Constraints{HorizonYears: 20},
	})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Search Target:       contribution")
	assert.Contains(t, out, "Horizon:             20 years")
	assert.Contains(t, out, "Monthly Contribution: $")
	assert.Contains(t, out, "20 years and 0 months")
	assert.Contains(t, out, "CURRENT PLAN")

	md, err := newTestSolver().OptimizeAllTargets(context.Background(), timeRequest(0, 500, 10), Constraints{HorizonYears: 20})
	require.NoError(t, err)
	table := (&TableFormatter{}).FormatMultiDimensional(md)
	assert.Contains(t, table, "BREAK-EVEN ANALYSIS: ALL TARGETS")
	assert.Contains(t, table, "initial_value")
	assert.Contains(t, table, "RECOMMENDATIONS")
	assert.Equal(t, "abcdefg...", (&TableFormatter{}).truncate("abcdefghijklmnop", 10))
}

func TestJSONFormatter(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        timeRequest(0, 500, 10),
		Target:      OptimizeRate,
		Constraints: Constraints{HorizonYears: 30},
	})
	require.NoError(t, err)

	compact, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")

	pretty, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.True(t, strings.Contains(pretty, "\n  "))
}
