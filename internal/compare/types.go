package compare

import (
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description"`
	Result       *domain.CalculationResult `json:"-"`

	// Key Metrics
	Mode          domain.CalculationMode `json:"mode"`
	Outcome       domain.Outcome         `json:"outcome"`
	GoalReached   bool                   `json:"goalReached"`
	TotalMonths   int                    `json:"totalMonths"`
	MonthlyEffort decimal.Decimal        `json:"monthlyEffort"` // given or solved contribution
	FinalAmount   decimal.Decimal        `json:"finalAmount"`
	TotalInvested decimal.Decimal        `json:"totalInvested"`
	TotalInterest decimal.Decimal        `json:"totalInterest"`

	// Comparison to Base
	MonthsDiffFromBase   int             `json:"monthsDiffFromBase"`
	EffortDiffFromBase   decimal.Decimal `json:"effortDiffFromBase"`
	FinalDiffFromBase    decimal.Decimal `json:"finalDiffFromBase"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase  decimal.Decimal `json:"interestPctFromBase"`

	// Scenario Specifics (extracted from the request for display)
	InitialValue decimal.Decimal   `json:"initialValue"`
	InterestRate decimal.Decimal   `json:"interestRate"`
	RatePeriod   domain.RatePeriod `json:"ratePeriod"`
	TargetYears  int               `json:"targetYears,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	PlanName           string             `json:"planName,omitempty"`
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
	Locale             domain.Locale      `json:"locale"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one scenario's result
func (mc *MetricsCalculator) CalculateMetrics(scenario *domain.Scenario, result *domain.CalculationResult) ComparisonResult {
	req := result.Request
	effort := req.MonthlyContribution
	if c, ok := result.RequiredContribution(); ok {
		effort = c
	}

	return ComparisonResult{
		ScenarioName:  scenario.Name,
		Description:   scenario.Description,
		Result:        result,
		Mode:          req.Mode,
		Outcome:       result.Outcome,
		GoalReached:   result.GoalReached,
		TotalMonths:   result.TotalMonths,
		MonthlyEffort: money(effort),
		FinalAmount:   money(result.FinalAmount),
		TotalInvested: money(result.TotalInvested),
		TotalInterest: money(result.TotalInterest),
		InitialValue:  money(req.InitialValue),
		InterestRate:  decimal.NewFromFloat(req.InterestRate),
		RatePeriod:    req.RatePeriod,
		TargetYears:   req.TargetYears,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MonthsDiffFromBase = scenario.TotalMonths - base.TotalMonths
	scenario.EffortDiffFromBase = scenario.MonthlyEffort.Sub(base.MonthlyEffort)
	scenario.FinalDiffFromBase = scenario.FinalAmount.Sub(base.FinalAmount)
	scenario.InterestDiffFromBase = scenario.TotalInterest.Sub(base.TotalInterest)

	if !base.TotalInterest.IsZero() {
		scenario.InterestPctFromBase = scenario.InterestDiffFromBase.
			Div(base.TotalInterest).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult
	locale := compSet.Locale

	// Fastest to target; a base that never gets there loses to any alternative that does
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.GoalReached {
			continue
		}
		if !fastest.GoalReached || alt.TotalMonths < fastest.TotalMonths {
			fastest = alt
		}
	}

	if fastest != base {
		if base.GoalReached {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest: %s reaches the target %d months sooner than the base scenario",
					fastest.ScenarioName, base.TotalMonths-fastest.TotalMonths))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest: %s reaches the target in %d months; the base scenario does not reach it",
					fastest.ScenarioName, fastest.TotalMonths))
		}
	}

	// Lowest monthly effort among scenarios that reach the target
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.GoalReached {
			continue
		}
		if !cheapest.GoalReached || alt.MonthlyEffort.LessThan(cheapest.MonthlyEffort) {
			cheapest = alt
		}
	}

	if cheapest != base && base.GoalReached {
		savings := base.MonthlyEffort.Sub(cheapest.MonthlyEffort)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Monthly Effort: %s needs %s less per month than the base scenario",
				cheapest.ScenarioName, output.FormatCurrency(savings, locale)))
	}

	// Most interest earned
	mostInterest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.GreaterThan(mostInterest.TotalInterest) {
			mostInterest = alt
		}
	}

	if mostInterest != base {
		gain := mostInterest.TotalInterest.Sub(base.TotalInterest)
		recommendations = append(recommendations,
			fmt.Sprintf("Most Interest: %s earns %s more interest than the base scenario",
				mostInterest.ScenarioName, output.FormatCurrency(gain, locale)))
	}

	return recommendations
}
