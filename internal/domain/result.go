package domain

// Outcome tags how a projection ended
type Outcome string

const (
	// OutcomeReached means the target was crossed within the month cap
	OutcomeReached Outcome = "reached"
	// OutcomeTargetNotReached means the month cap was hit first; the ledger is truncated there
	OutcomeTargetNotReached Outcome = "target_not_reached"
	// OutcomeSolved means a positive contribution was solved for the fixed horizon
	OutcomeSolved Outcome = "solved"
	// OutcomeAlreadyFunded means the initial value alone meets the target by the horizon
	OutcomeAlreadyFunded Outcome = "already_funded"
)

// GoalReached reports whether the outcome ends at or above the target
func (o Outcome) GoalReached() bool {
	return o != OutcomeTargetNotReached && o != ""
}

// CalculationResult is the full answer to one CalculationRequest
type CalculationResult struct {
	Request     CalculationRequest `json:"request"`
	Outcome     Outcome            `json:"outcome"`
	GoalReached bool               `json:"goalReached"`
	Target      float64            `json:"target"`
	MonthlyRate float64            `json:"monthlyRate"`

	TotalMonths   int     `json:"totalMonths"`
	FinalAmount   float64 `json:"finalAmount"`
	TotalInvested float64 `json:"totalInvested"`
	TotalInterest float64 `json:"totalInterest"`

	// RequiredMonthlyContribution is only set in ModeContributionForTerm
	RequiredMonthlyContribution *float64 `json:"requiredMonthlyContribution,omitempty"`

	MonthlyLedger  []MonthlyRecord `json:"monthlyLedger"`
	YearlyLedger   []YearlyRecord  `json:"yearlyLedger"`
	SummaryMessage string          `json:"summaryMessage"`
}

// Years returns the whole years of the simulated horizon
func (r *CalculationResult) Years() int {
	return r.TotalMonths / 12
}

// RemainingMonths returns the months beyond the whole years of the horizon
func (r *CalculationResult) RemainingMonths() int {
	return r.TotalMonths % 12
}

// RequiredContribution returns the solved contribution and whether one exists
func (r *CalculationResult) RequiredContribution() (float64, bool) {
	if r.RequiredMonthlyContribution == nil {
		return 0, false
	}
	return *r.RequiredMonthlyContribution, true
}
