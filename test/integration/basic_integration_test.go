package integration

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/breakeven"
	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/compare"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndComparison(t *testing.T) {
	setupTestEnvironment(t)

	plan, err := config.NewInputParser().LoadFromFile(examplePlan)
	require.NoError(t, err)

	compSet, err := compare.NewCompareEngine(calculation.NewCalculationEngine()).Compare(context.Background(), plan, compare.CompareOptions{
		Alternatives: []string{"double", "slow"},
	})
	require.NoError(t, err)

	assert.Equal(t, "steady", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, -80, compSet.AlternativeResults[0].MonthsDiffFromBase)
	assert.Equal(t, 61, compSet.AlternativeResults[1].MonthsDiffFromBase)
	assert.NotEmpty(t, compSet.Recommendations)

	out := (&compare.TableFormatter{}).FormatCompact(compSet)
	assert.Equal(t, "Base: steady | double: -80m | slow: +61m", out)
}

func TestEndToEndBreakEven(t *testing.T) {
	setupTestEnvironment(t)

	plan, err := config.NewInputParser().LoadFromFile(examplePlan)
	require.NoError(t, err)
	scenario, ok := plan.ScenarioByName("ten_years")
	require.True(t, ok)

	engine := calculation.NewCalculationEngine()
	solved, err := engine.Compute(context.Background(), scenario.Request)
	require.NoError(t, err)
	required, ok := solved.RequiredContribution()
	require.True(t, ok)

	// the searched contribution and the closed form agree
	result, err := breakeven.NewDefaultSolver(engine).Optimize(context.Background(), breakeven.OptimizationRequest{
		Base:   scenario.Request,
		Target: breakeven.OptimizeContribution,
	})
	require.NoError(t, err)
	assert.InDelta(t, required, result.Value().InexactFloat64(), 0.01)
	assert.Equal(t, 120, result.Result.TotalMonths)
}
