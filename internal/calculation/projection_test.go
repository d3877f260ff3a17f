package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		period   domain.RatePeriod
		expected float64
	}{
		{"annual 10%", 10, domain.PeriodAnnual, 0.007974140428903764},
		{"monthly 1%", 1, domain.PeriodMonthly, 0.01},
		{"zero annual", 0, domain.PeriodAnnual, 0},
		{"negative clamps", -3, domain.PeriodMonthly, 0},
		{"nan clamps", math.NaN(), domain.PeriodAnnual, 0},
		{"inf clamps", math.Inf(1), domain.PeriodAnnual, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeRate(tt.rate, tt.period), 1e-15)
		})
	}
}

func TestNormalizeRate_AnnualEquivalence(t *testing.T) {
	for _, rate := range []float64{0.5, 6, 10, 13.75, 40} {
		monthly := NormalizeRate(rate, domain.PeriodAnnual)
		assert.InDelta(t, rate, AnnualEquivalent(monthly), 1e-9, "twelve months reproduce %.2f%%", rate)
		assert.Less(t, monthly, rate/100/12+1e-12, "effective rate never exceeds nominal division")
	}
}

func TestSolveMonthlyContribution(t *testing.T) {
	monthly := NormalizeRate(10, domain.PeriodAnnual)

	c, funded := SolveMonthlyContribution(0, monthly, DefaultTarget, 120)
	assert.False(t, funded)
	assert.InDelta(t, 5003.40590060165, c, 1e-8)

	c, funded = SolveMonthlyContribution(50000, 0, DefaultTarget, 120)
	assert.False(t, funded)
	assert.Equal(t, 950000.0/120, c)

	c, funded = SolveMonthlyContribution(100000, 0.01, DefaultTarget, 240)
	assert.True(t, funded)
	assert.Equal(t, 0.0, c)

	c, funded = SolveMonthlyContribution(DefaultTarget, 0, DefaultTarget, 12)
	assert.True(t, funded, "exactly funded counts as funded")
	assert.Equal(t, 0.0, c)
}

func TestSolveMonthlyContribution_GrowthOverflow(t *testing.T) {
	// 2^1200 is not a finite float64
	c, funded := SolveMonthlyContribution(0, 1, DefaultTarget, 1200)
	assert.False(t, funded)
	assert.Equal(t, 0.0, c)

	c, funded = SolveMonthlyContribution(1, 1, DefaultTarget, 1200)
	assert.True(t, funded)
	assert.Equal(t, 0.0, c)
}

func TestProjectFixedTerm_ReplaysSolvedContribution(t *testing.T) {
	for _, years := range []int{1, 5, 10, 25, 40} {
		monthly := NormalizeRate(8, domain.PeriodAnnual)
		c, _ := SolveMonthlyContribution(20000, monthly, DefaultTarget, years*12)

		p := projectFixedTerm(20000, c, monthly, years*12)

		require.Len(t, p.ledger, years*12+1)
		assert.InEpsilon(t, DefaultTarget, p.total, 1e-6, "years=%d", years)
	}
}

func TestProjectUntilTarget_FirstCrossing(t *testing.T) {
	monthly := NormalizeRate(10, domain.PeriodAnnual)
	p := projectUntilTarget(0, 500, monthly, DefaultTarget, DefaultMaxMonths)

	assert.Equal(t, 357, p.month)
	assert.GreaterOrEqual(t, p.total, DefaultTarget)
	assert.Less(t, p.ledger[len(p.ledger)-2].CumulativeTotal, DefaultTarget)
	assert.Equal(t, 0, p.ledger[0].MonthIndex)
	assert.Equal(t, 0.0, p.ledger[0].CumulativeInterest)
}

func TestProjectionStep_InterestBeforeContribution(t *testing.T) {
	p := newProjection(1000, 1)
	p.step(0.01, 100)

	// 1000 * 1% interest, the new 100 earns nothing this month
	assert.Equal(t, 1110.0, p.total)
	assert.Equal(t, 1100.0, p.invested)
	assert.InDelta(t, 10.0, p.ledger[1].CumulativeInterest, 1e-9)
}

func TestEstimateMonths(t *testing.T) {
	monthly := NormalizeRate(10, domain.PeriodAnnual)

	assert.Equal(t, 357, estimateMonths(0, 500, monthly, DefaultTarget, DefaultMaxMonths))
	assert.Equal(t, 0, estimateMonths(DefaultTarget, 0, monthly, DefaultTarget, DefaultMaxMonths))
	assert.Equal(t, 1000, estimateMonths(0, 1000, 0, DefaultTarget, DefaultMaxMonths))
	assert.Equal(t, DefaultMaxMonths, estimateMonths(0, 100, 0, DefaultTarget, DefaultMaxMonths))
	assert.Equal(t, DefaultMaxMonths, estimateMonths(10, 0, 0, DefaultTarget, DefaultMaxMonths))
}
