package breakeven

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// moneyPlaces is the precision solved amounts are reported with
const moneyPlaces = 2

// ratePlaces is the precision solved rate changes are reported with
const ratePlaces = 6

// OptimizationTarget defines which request field the solver searches
type OptimizationTarget string

const (
	OptimizeRate         OptimizationTarget = "rate"
	OptimizeInitialValue OptimizationTarget = "initial_value"
	OptimizeContribution OptimizationTarget = "contribution"
	OptimizeAll          OptimizationTarget = "all"
)

// ParseTarget resolves a target name
func ParseTarget(s string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(s); t {
	case OptimizeRate, OptimizeInitialValue, OptimizeContribution, OptimizeAll:
		return t, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown optimization target " + s}
}

// Constraints bound the search. The horizon is the number of years within
// which the target has to be reached.
type Constraints struct {
	HorizonYears int `json:"horizon_years"`

	// Interest rate bounds in the request's own period, in percent
	MinRate *float64 `json:"min_rate,omitempty"`
	MaxRate *float64 `json:"max_rate,omitempty"`

	MaxInitialValue *float64 `json:"max_initial_value,omitempty"`
	MaxContribution *float64 `json:"max_contribution,omitempty"`
}

// DefaultConstraints returns search bounds wide enough for any sane plan
func DefaultConstraints(horizonYears int) Constraints {
	minRate := 0.0
	maxRate := 100.0
	return Constraints{
		HorizonYears: horizonYears,
		MinRate:      &minRate,
		MaxRate:      &maxRate,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.HorizonYears <= 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "horizon years must be positive",
		}
	}
	if c.MinRate != nil && (*c.MinRate < 0 || math.IsNaN(*c.MinRate)) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_rate cannot be negative",
		}
	}
	if c.MinRate != nil && c.MaxRate != nil && *c.MinRate > *c.MaxRate {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_rate cannot be greater than max_rate",
		}
	}
	for name, v := range map[string]*float64{"max_initial_value": c.MaxInitialValue, "max_contribution": c.MaxContribution} {
		if v != nil && !(*v > 0) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   name + " must be positive",
			}
		}
	}
	return nil
}

// OptimizationRequest defines the parameters for one solver run
type OptimizationRequest struct {
	Base          domain.CalculationRequest `json:"base"`
	Target        OptimizationTarget        `json:"target"`
	Constraints   Constraints               `json:"constraints"`
	MaxIterations int                       `json:"max_iterations"`
	Tolerance     float64                   `json:"tolerance"` // width of the final bracket
}

// OptimizationResult holds the smallest value of the target field that still
// reaches the goal within the horizon, and the projection at that value.
// Solved amounts are whole cents, rounded up so they still reach the goal.
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	OptimalRate         *float64         `json:"optimal_rate,omitempty"`
	OptimalInitialValue *decimal.Decimal `json:"optimal_initial_value,omitempty"`
	OptimalContribution *decimal.Decimal `json:"optimal_contribution,omitempty"`

	Result     *domain.CalculationResult `json:"result"`
	BaseResult *domain.CalculationResult `json:"base_result,omitempty"`

	// Change of the searched field against the base request: rounded to cents
	// for amounts, percentage points for the rate
	DiffFromBase decimal.Decimal `json:"diff_from_base"`
}

// Value returns the solved value whichever field was searched
func (r *OptimizationResult) Value() decimal.Decimal {
	switch {
	case r.OptimalRate != nil:
		return decimal.NewFromFloat(*r.OptimalRate)
	case r.OptimalInitialValue != nil:
		return *r.OptimalInitialValue
	case r.OptimalContribution != nil:
		return *r.OptimalContribution
	}
	return decimal.Zero
}

// MultiDimensionalResult contains one result per searched field
type MultiDimensionalResult struct {
	Results         []OptimizationResult          `json:"results"`
	Failures        map[OptimizationTarget]string `json:"failures,omitempty"`
	Recommendations []string                      `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	RateTolerance  float64 // percentage points
	MoneyTolerance float64
	MaxIterations  int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		RateTolerance:  1e-6,
		MoneyTolerance: 0.005, // half a cent
		MaxIterations:  100,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
