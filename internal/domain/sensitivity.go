package domain

// RateSensitivityPoint is the projection outcome at one interest rate
type RateSensitivityPoint struct {
	InterestRate float64 `json:"interestRate"`
	MonthlyRate  float64 `json:"monthlyRate"`
	IsBase       bool    `json:"isBase"`
	Outcome      Outcome `json:"outcome"`

	TotalMonths                 int      `json:"totalMonths"`
	FinalAmount                 float64  `json:"finalAmount"`
	TotalInvested               float64  `json:"totalInvested"`
	TotalInterest               float64  `json:"totalInterest"`
	RequiredMonthlyContribution *float64 `json:"requiredMonthlyContribution,omitempty"`

	// Deltas against the base request's result
	MonthsDelta       int     `json:"monthsDelta"`
	ContributionDelta float64 `json:"contributionDelta"`
	InterestDelta     float64 `json:"interestDelta"`
}

// RateSensitivity is a sweep of one request across a range of interest rates
type RateSensitivity struct {
	BaseRequest CalculationRequest     `json:"baseRequest"`
	MinRate     float64                `json:"minRate"`
	MaxRate     float64                `json:"maxRate"`
	Steps       int                    `json:"steps"`
	Points      []RateSensitivityPoint `json:"points"`
}
