package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.Equal(t, DefaultTarget, engine.Config.Target)
	assert.Equal(t, DefaultMaxMonths, engine.Config.MaxMonths)
	assert.Equal(t, domain.LocaleEnglish, engine.Config.Locale)
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestNewCalculationEngineWithConfig_FillsDefaults(t *testing.T) {
	engine := NewCalculationEngineWithConfig(EngineConfig{Target: -5, Locale: "xx"})

	assert.Equal(t, DefaultTarget, engine.Config.Target)
	assert.Equal(t, DefaultMaxMonths, engine.Config.MaxMonths)
	assert.Equal(t, domain.DefaultLocale, engine.Config.Locale)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// nil falls back to the no-op logger
	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCompute_TimeToTarget(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		MonthlyContribution: 500,
		InterestRate:        10,
		RatePeriod:          domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeReached, result.Outcome)
	assert.True(t, result.GoalReached)
	assert.Equal(t, 357, result.TotalMonths)
	assert.Equal(t, 29, result.Years())
	assert.Equal(t, 9, result.RemainingMonths())
	assert.InDelta(t, 1005659.50, result.FinalAmount, 0.01)
	assert.InDelta(t, 178500.0, result.TotalInvested, 1e-6)
	assert.InDelta(t, result.FinalAmount-result.TotalInvested, result.TotalInterest, 1e-9)
	assert.Nil(t, result.RequiredMonthlyContribution)
	assert.Equal(t, "You will reach 1 million in 29 years and 9 months!", result.SummaryMessage)

	// first crossing: the month before the last is still below the target
	require.Len(t, result.MonthlyLedger, 358)
	assert.GreaterOrEqual(t, result.FinalAmount, DefaultTarget)
	assert.Less(t, result.MonthlyLedger[356].CumulativeTotal, DefaultTarget)
	assert.InDelta(t, 997207.63, result.MonthlyLedger[356].CumulativeTotal, 0.01)
}

func TestCompute_TimeToTargetWithInitialValue(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		InitialValue:        10000,
		MonthlyContribution: 1000,
		InterestRate:        10,
		RatePeriod:          domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, 267, result.TotalMonths)
	assert.InDelta(t, 1003410.54, result.FinalAmount, 0.01)
	assert.Equal(t, "You will reach 1 million in 22 years and 3 months!", result.SummaryMessage)
}

func TestCompute_MonthlyRateLumpSum(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeTimeToTarget,
		InitialValue: 1000,
		InterestRate: 1,
		RatePeriod:   domain.PeriodMonthly,
	})
	require.NoError(t, err)

	assert.Equal(t, 695, result.TotalMonths)
	assert.Equal(t, 0.01, result.MonthlyRate)
	assert.InDelta(t, 1000.0, result.TotalInvested, 1e-9)
}

func TestCompute_TargetNotReached(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		MonthlyContribution: 100,
		InterestRate:        0,
		RatePeriod:          domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeTargetNotReached, result.Outcome)
	assert.False(t, result.GoalReached)
	assert.Equal(t, DefaultMaxMonths, result.TotalMonths)
	assert.Len(t, result.MonthlyLedger, DefaultMaxMonths+1)
	assert.InDelta(t, 120000.0, result.FinalAmount, 1e-6)
	assert.Equal(t, 0.0, result.TotalInterest)
	assert.Equal(t, "You will not reach 1 million within 100 years.", result.SummaryMessage)
}

func TestCompute_NothingToGrow(t *testing.T) {
	engine := NewCalculationEngineWithConfig(EngineConfig{MaxMonths: 24})

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeTimeToTarget,
		InitialValue: 5000,
		RatePeriod:   domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeTargetNotReached, result.Outcome)
	assert.Equal(t, 24, result.TotalMonths)
	assert.Equal(t, 5000.0, result.FinalAmount)
	assert.Equal(t, "You will not reach 1 million within 2 years.", result.SummaryMessage)
}

func TestCompute_InitialValueAlreadyAtTarget(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		InitialValue:        2_000_000,
		MonthlyContribution: 500,
		InterestRate:        10,
		RatePeriod:          domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeReached, result.Outcome)
	assert.Equal(t, 0, result.TotalMonths)
	require.Len(t, result.MonthlyLedger, 1)
	// a zero-month horizon keeps the year 0 row
	require.Len(t, result.YearlyLedger, 1)
	assert.Equal(t, 0, result.YearlyLedger[0].YearIndex)
	assert.Equal(t, 2_000_000.0, result.YearlyLedger[0].InvestedThisYear)
	assert.Equal(t, "You will reach 1 million in 0 years and 0 months!", result.SummaryMessage)
}

func TestCompute_ContributionForTerm(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		TargetYears:  10,
		InterestRate: 10,
		RatePeriod:   domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSolved, result.Outcome)
	assert.True(t, result.GoalReached)
	contribution, ok := result.RequiredContribution()
	require.True(t, ok)
	assert.Greater(t, contribution, 0.0)
	assert.InDelta(t, 5003.4059006, contribution, 1e-6)

	assert.Equal(t, 120, result.TotalMonths)
	assert.Len(t, result.MonthlyLedger, 121)
	assert.InEpsilon(t, DefaultTarget, result.FinalAmount, 1e-6)
	assert.InDelta(t, 600408.708, result.TotalInvested, 0.001)
	assert.Equal(t, "To reach 1 million in 10 years, the required monthly contribution is:", result.SummaryMessage)
	assert.NotContains(t, result.SummaryMessage, "5003")
}

func TestCompute_ContributionForTermZeroRate(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		InitialValue: 50000,
		TargetYears:  10,
		InterestRate: 0,
		RatePeriod:   domain.PeriodMonthly,
	})
	require.NoError(t, err)

	contribution, ok := result.RequiredContribution()
	require.True(t, ok)
	assert.Equal(t, (DefaultTarget-50000)/120, contribution)
	assert.InEpsilon(t, DefaultTarget, result.FinalAmount, 1e-9)
	assert.Equal(t, 0.0, result.MonthlyRate)

	// straight line: every month adds exactly the contribution
	for i := 1; i < len(result.MonthlyLedger); i++ {
		step := result.MonthlyLedger[i].CumulativeTotal - result.MonthlyLedger[i-1].CumulativeTotal
		assert.InDelta(t, contribution, step, 1e-6)
	}
}

func TestCompute_AlreadyFunded(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		InitialValue: 100000,
		TargetYears:  20,
		InterestRate: 1,
		RatePeriod:   domain.PeriodMonthly,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAlreadyFunded, result.Outcome)
	assert.True(t, result.GoalReached)
	contribution, ok := result.RequiredContribution()
	require.True(t, ok)
	assert.Equal(t, 0.0, contribution)
	assert.Equal(t, 240, result.TotalMonths)
	assert.InDelta(t, 1089255.37, result.FinalAmount, 0.01)
	assert.Equal(t, 100000.0, result.TotalInvested)
}

func TestCompute_NormalizesRequest(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:         domain.ModeContributionForTerm,
		InitialValue: -100,
		TargetYears:  0,
		InterestRate: math.NaN(),
		RatePeriod:   "weekly",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Request.InitialValue)
	assert.Equal(t, 1, result.Request.TargetYears)
	assert.Equal(t, domain.PeriodAnnual, result.Request.RatePeriod)
	assert.Equal(t, 12, result.TotalMonths)
	contribution, _ := result.RequiredContribution()
	assert.InDelta(t, DefaultTarget/12, contribution, 1e-9)
}

func TestCompute_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	req := domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		InitialValue:        1234.56,
		MonthlyContribution: 789,
		InterestRate:        0.8,
		RatePeriod:          domain.PeriodMonthly,
	}

	first, err := engine.Compute(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_CancelledContext(t *testing.T) {
	engine := NewCalculationEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Compute(ctx, domain.DefaultRequest())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestCompute_PortugueseMessages(t *testing.T) {
	engine := NewCalculationEngineWithConfig(EngineConfig{Locale: domain.LocalePortuguese})

	timeResult, err := engine.Compute(context.Background(), domain.DefaultRequest())
	require.NoError(t, err)
	assert.Equal(t, "Você atingirá R$ 1 milhão em 29 anos e 9 meses!", timeResult.SummaryMessage)

	req := domain.DefaultRequest()
	req.Mode = domain.ModeContributionForTerm
	termResult, err := engine.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Para atingir R$ 1 milhão em 10 anos, você precisa investir mensalmente:", termResult.SummaryMessage)
}

func TestCompute_CustomTarget(t *testing.T) {
	engine := NewCalculationEngineWithConfig(EngineConfig{Target: 100000})

	result, err := engine.Compute(context.Background(), domain.CalculationRequest{
		Mode:                domain.ModeTimeToTarget,
		MonthlyContribution: 1000,
		RatePeriod:          domain.PeriodAnnual,
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, result.Target)
	assert.Equal(t, 100, result.TotalMonths)
	assert.Equal(t, "You will reach the target in 8 years and 4 months!", result.SummaryMessage)
}

func TestCompute_DebugLogsEveryMonth(t *testing.T) {
	engine := NewCalculationEngine()
	engine.Debug = true
	logger := &TestLogger{}
	engine.SetLogger(logger)

	req := domain.DefaultRequest()
	req.Mode = domain.ModeContributionForTerm
	req.MonthlyContribution = 0
	req.TargetYears = 1
	_, err := engine.Compute(context.Background(), req)
	require.NoError(t, err)

	// solve line, 13 ledger lines, summary line
	assert.Len(t, logger.messages, 15)
	assert.Equal(t, "INFO: projection %s: outcome=%s months=%d final=%.2f", logger.messages[len(logger.messages)-1])
}

func TestCompute_LedgerInvariants(t *testing.T) {
	engine := NewCalculationEngine()
	requests := []domain.CalculationRequest{
		{Mode: domain.ModeTimeToTarget, MonthlyContribution: 500, InterestRate: 10, RatePeriod: domain.PeriodAnnual},
		{Mode: domain.ModeTimeToTarget, InitialValue: 250000, MonthlyContribution: 3000, InterestRate: 0.9, RatePeriod: domain.PeriodMonthly},
		{Mode: domain.ModeTimeToTarget, InitialValue: 10, MonthlyContribution: 10, InterestRate: 0, RatePeriod: domain.PeriodAnnual},
		{Mode: domain.ModeContributionForTerm, TargetYears: 5, InterestRate: 12, RatePeriod: domain.PeriodAnnual},
		{Mode: domain.ModeContributionForTerm, InitialValue: 300000, TargetYears: 30, InterestRate: 6, RatePeriod: domain.PeriodAnnual},
		{Mode: domain.ModeContributionForTerm, InitialValue: 999999, TargetYears: 1, InterestRate: 0, RatePeriod: domain.PeriodMonthly},
		{Mode: domain.ModeTimeToTarget, InitialValue: 2_000_000, MonthlyContribution: 100, InterestRate: 1, RatePeriod: domain.PeriodMonthly},
	}

	for _, req := range requests {
		result, err := engine.Compute(context.Background(), req)
		require.NoError(t, err)

		ledger := result.MonthlyLedger
		require.Len(t, ledger, result.TotalMonths+1)
		for i, rec := range ledger {
			assert.Equal(t, i, rec.MonthIndex, "contiguous month index")
			assert.Equal(t, i/12, rec.YearIndex)
			assert.Equal(t, rec.CumulativeTotal-rec.CumulativeInvested, rec.CumulativeInterest, "conservation")
			if i > 0 {
				assert.GreaterOrEqual(t, rec.CumulativeTotal, ledger[i-1].CumulativeTotal, "monotonic total")
			}
		}

		last := ledger[len(ledger)-1]
		assert.Equal(t, last.CumulativeTotal, result.FinalAmount)
		assert.Equal(t, last.CumulativeInvested, result.TotalInvested)

		// every yearly row's running sum telescopes back to the closing
		// record of year 0, or to zero when year 0 is itself reported
		var baseInvested, baseInterest float64
		if len(result.YearlyLedger) > 0 && result.YearlyLedger[0].YearIndex > 0 {
			yearZero := ledger[min(11, len(ledger)-1)]
			baseInvested, baseInterest = yearZero.CumulativeInvested, yearZero.CumulativeInterest
		}
		var invested, interest float64
		for _, year := range result.YearlyLedger {
			invested += year.InvestedThisYear
			interest += year.InterestThisYear
			assert.InDelta(t, year.CumulativeInvested-baseInvested, invested, 1e-6, "invested through year %d", year.YearIndex)
			assert.InDelta(t, year.CumulativeInterest-baseInterest, interest, 1e-6, "interest through year %d", year.YearIndex)

			closing := ledger[min(year.YearIndex*12+11, len(ledger)-1)]
			assert.Equal(t, closing.CumulativeInvested, year.CumulativeInvested, "closing record of year %d", year.YearIndex)
			assert.Equal(t, closing.CumulativeTotal, year.CumulativeTotal, "closing record of year %d", year.YearIndex)
		}
		if n := len(result.YearlyLedger); n > 0 {
			assert.Equal(t, last.CumulativeInvested, result.YearlyLedger[n-1].CumulativeInvested)
		}
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
