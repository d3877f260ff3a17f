package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRate_TimeToTarget(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)

	sweep, err := analyzer.SweepRate(context.Background(), domain.DefaultRequest(), 6, 12, 4)
	require.NoError(t, err)

	require.Len(t, sweep.Points, 4)
	assert.Equal(t, []float64{6, 8, 10, 12}, []float64{
		sweep.Points[0].InterestRate, sweep.Points[1].InterestRate,
		sweep.Points[2].InterestRate, sweep.Points[3].InterestRate,
	})

	base := sweep.Points[2]
	assert.True(t, base.IsBase)
	assert.Equal(t, 357, base.TotalMonths)
	assert.Equal(t, 0, base.MonthsDelta)
	assert.Equal(t, 0.0, base.InterestDelta)

	for i := 1; i < len(sweep.Points); i++ {
		assert.Less(t, sweep.Points[i].TotalMonths, sweep.Points[i-1].TotalMonths, "higher rate reaches the target sooner")
		assert.Nil(t, sweep.Points[i].RequiredMonthlyContribution)
	}
	assert.Positive(t, sweep.Points[0].MonthsDelta)
	assert.Negative(t, sweep.Points[3].MonthsDelta)
}

func TestSweepRate_ContributionForTerm(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine())
	req := domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		InitialValue: 10000,
		TargetYears:  15,
		InterestRate: 0.5,
		RatePeriod:   domain.PeriodMonthly,
	}

	sweep, err := analyzer.SweepRate(context.Background(), req, 0, 1, 5)
	require.NoError(t, err)
	require.Len(t, sweep.Points, 5)

	for i, point := range sweep.Points {
		require.NotNil(t, point.RequiredMonthlyContribution)
		assert.Equal(t, 180, point.TotalMonths)
		if i > 0 {
			assert.Less(t, *point.RequiredMonthlyContribution, *sweep.Points[i-1].RequiredMonthlyContribution)
		}
	}
	assert.True(t, sweep.Points[2].IsBase)
	assert.InDelta(t, 0.0, sweep.Points[2].ContributionDelta, 1e-9)
	assert.Positive(t, sweep.Points[0].ContributionDelta)
	assert.Equal(t, req, sweep.BaseRequest)
}

func TestSweepRate_InvalidRange(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	req := domain.DefaultRequest()

	tests := []struct {
		name     string
		min, max float64
		steps    int
		errText  string
	}{
		{"too few steps", 1, 2, 1, "at least 2 steps"},
		{"too many steps", 1, 2, MaxSensitivitySteps + 1, "limited to"},
		{"negative minimum", -1, 2, 3, "cannot be negative"},
		{"inverted range", 5, 2, 3, "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweep, err := analyzer.SweepRate(context.Background(), req, tt.min, tt.max, tt.steps)
			require.Error(t, err)
			assert.Nil(t, sweep)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestSweepRate_CancelledContext(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.SweepRate(ctx, domain.DefaultRequest(), 1, 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
