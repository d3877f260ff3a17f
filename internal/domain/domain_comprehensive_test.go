package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	for in, expected := range map[string]CalculationMode{
		"TIME_TO_TARGET":        ModeTimeToTarget,
		" time ":                ModeTimeToTarget,
		"TIME_TO_MILLION":       ModeTimeToTarget,
		"Contribution-For-Term": ModeContributionForTerm,
		"aporte":                ModeContributionForTerm,
	} {
		mode, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, mode)
	}

	_, err := ParseMode("retire")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestParsePeriod(t *testing.T) {
	for in, expected := range map[string]RatePeriod{
		"ANNUAL":  PeriodAnnual,
		"a.a.":    PeriodAnnual,
		"Monthly": PeriodMonthly,
		"mensal":  PeriodMonthly,
	} {
		period, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, period)
	}

	_, err := ParsePeriod("")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCalculationRequest_JSON(t *testing.T) {
	var req CalculationRequest
	err := json.Unmarshal([]byte(`{"mode":"contribution","initialValue":100,"targetYears":3,"interestRate":1,"ratePeriod":"monthly"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, CalculationRequest{
		Mode:         ModeContributionForTerm,
		InitialValue: 100,
		TargetYears:  3,
		InterestRate: 1,
		RatePeriod:   PeriodMonthly,
	}, req)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"CONTRIBUTION_FOR_TERM","initialValue":100,"targetYears":3,"interestRate":1,"ratePeriod":"MONTHLY"}`, string(data))

	err = json.Unmarshal([]byte(`{"mode":"sideways"}`), &req)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestCalculationRequest_YAML(t *testing.T) {
	var req CalculationRequest
	require.NoError(t, yaml.Unmarshal([]byte("mode: time\nmonthly_contribution: 250\ninterest_rate: 8\nrate_period: anual\n"), &req))

	assert.Equal(t, ModeTimeToTarget, req.Mode)
	assert.Equal(t, PeriodAnnual, req.RatePeriod)
	assert.Equal(t, 250.0, req.MonthlyContribution)
}

func TestDefaultRequest(t *testing.T) {
	req := DefaultRequest()

	assert.Equal(t, ModeTimeToTarget, req.Mode)
	assert.Equal(t, 0.0, req.InitialValue)
	assert.Equal(t, 500.0, req.MonthlyContribution)
	assert.Equal(t, 10, req.TargetYears)
	assert.Equal(t, 10.0, req.InterestRate)
	assert.Equal(t, PeriodAnnual, req.RatePeriod)
}

func TestCalculationRequest_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       CalculationRequest
		expected CalculationRequest
	}{
		{
			name:     "time mode drops the horizon",
			in:       DefaultRequest(),
			expected: CalculationRequest{Mode: ModeTimeToTarget, MonthlyContribution: 500, InterestRate: 10, RatePeriod: PeriodAnnual},
		},
		{
			name:     "term mode drops the contribution",
			in:       CalculationRequest{Mode: ModeContributionForTerm, MonthlyContribution: 99, TargetYears: 4, InterestRate: 1, RatePeriod: PeriodMonthly},
			expected: CalculationRequest{Mode: ModeContributionForTerm, TargetYears: 4, InterestRate: 1, RatePeriod: PeriodMonthly},
		},
		{
			name:     "non-positive horizon becomes one year",
			in:       CalculationRequest{Mode: ModeContributionForTerm, TargetYears: -2, RatePeriod: PeriodAnnual},
			expected: CalculationRequest{Mode: ModeContributionForTerm, TargetYears: 1, RatePeriod: PeriodAnnual},
		},
		{
			name:     "negative and non-finite values clamp to zero",
			in:       CalculationRequest{Mode: ModeTimeToTarget, InitialValue: -5, MonthlyContribution: math.Inf(1), InterestRate: math.NaN(), RatePeriod: PeriodAnnual},
			expected: CalculationRequest{Mode: ModeTimeToTarget, RatePeriod: PeriodAnnual},
		},
		{
			name:     "unknown enums fall back",
			in:       CalculationRequest{Mode: "x", RatePeriod: "y", MonthlyContribution: 1},
			expected: CalculationRequest{Mode: ModeTimeToTarget, RatePeriod: PeriodAnnual, MonthlyContribution: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, got.Normalize(), "normalizing twice changes nothing")
		})
	}
}

func TestCalculationRequest_HorizonMonths(t *testing.T) {
	req := CalculationRequest{Mode: ModeContributionForTerm, TargetYears: 7}
	assert.Equal(t, 84, req.HorizonMonths())

	req.Mode = ModeTimeToTarget
	assert.Equal(t, 0, req.HorizonMonths())
}

func TestNewMonthlyRecord(t *testing.T) {
	rec := NewMonthlyRecord(25, 1000, 1250.5)

	assert.Equal(t, 25, rec.MonthIndex)
	assert.Equal(t, 2, rec.YearIndex)
	assert.Equal(t, 250.5, rec.CumulativeInterest)
}

func TestOutcome_GoalReached(t *testing.T) {
	assert.True(t, OutcomeReached.GoalReached())
	assert.True(t, OutcomeSolved.GoalReached())
	assert.True(t, OutcomeAlreadyFunded.GoalReached())
	assert.False(t, OutcomeTargetNotReached.GoalReached())
	assert.False(t, Outcome("").GoalReached())
}

func TestCalculationResult_Accessors(t *testing.T) {
	result := &CalculationResult{TotalMonths: 357}
	assert.Equal(t, 29, result.Years())
	assert.Equal(t, 9, result.RemainingMonths())

	_, ok := result.RequiredContribution()
	assert.False(t, ok)

	c := 123.45
	result.RequiredMonthlyContribution = &c
	got, ok := result.RequiredContribution()
	assert.True(t, ok)
	assert.Equal(t, 123.45, got)
}

func TestCalculationResult_JSONOmitsContributionInTimeMode(t *testing.T) {
	data, err := json.Marshal(CalculationResult{Outcome: OutcomeReached})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "requiredMonthlyContribution")
}

func TestParseLocale(t *testing.T) {
	for in, expected := range map[string]Locale{
		"":      LocaleEnglish,
		"en":    LocaleEnglish,
		"EN_us": LocaleEnglish,
		"pt":    LocalePortuguese,
		"pt_BR": LocalePortuguese,
	} {
		locale, err := ParseLocale(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, locale)
	}

	_, err := ParseLocale("de")
	assert.Error(t, err)
	assert.Equal(t, DefaultLocale, Locale("de").OrDefault())
	assert.Equal(t, LocalePortuguese, LocalePortuguese.OrDefault())
}

func TestPlan_BaseScenario(t *testing.T) {
	plan := &Plan{Scenarios: []Scenario{{Name: "a"}, {Name: "b"}}}

	base, err := plan.BaseScenario()
	require.NoError(t, err)
	assert.Equal(t, "a", base.Name)

	plan.Base = "b"
	base, err = plan.BaseScenario()
	require.NoError(t, err)
	assert.Equal(t, "b", base.Name)

	plan.Base = "c"
	_, err = plan.BaseScenario()
	assert.Error(t, err)

	_, err = (&Plan{}).BaseScenario()
	assert.Error(t, err)

	_, ok := plan.ScenarioByName("a")
	assert.True(t, ok)
}
