package transform

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// AdjustContribution scales the monthly contribution by a percentage.
// Only meaningful when the contribution is an input (time-to-target mode).
type AdjustContribution struct {
	Percent float64 // +10 means ten percent more each month
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	return fmt.Sprintf("Change the monthly contribution by %+.0f%%", ac.Percent)
}

func (ac *AdjustContribution) Validate(base *domain.Scenario) error {
	if err := validateBase(ac.Name(), base); err != nil {
		return err
	}
	if math.IsNaN(ac.Percent) || math.IsInf(ac.Percent, 0) || ac.Percent < -100 {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("percent must be a finite value of at least -100, got %v", ac.Percent), nil)
	}
	return requireContributionInput(ac.Name(), base)
}

func (ac *AdjustContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.MonthlyContribution = base.Request.MonthlyContribution * (1 + ac.Percent/100)
	return modified, nil
}

// SetContribution replaces the monthly contribution with an absolute amount.
type SetContribution struct {
	Amount float64
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Contribute %.2f every month", sc.Amount)
}

func (sc *SetContribution) Validate(base *domain.Scenario) error {
	if err := validateBase(sc.Name(), base); err != nil {
		return err
	}
	if !isNonNegative(sc.Amount) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %v", sc.Amount), nil)
	}
	return requireContributionInput(sc.Name(), base)
}

func (sc *SetContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.MonthlyContribution = sc.Amount
	return modified, nil
}

// AddLumpSum adds a one-off amount to the initial value; negative amounts withdraw.
type AddLumpSum struct {
	Amount float64
}

func (al *AddLumpSum) Name() string {
	return "add_lump_sum"
}

func (al *AddLumpSum) Description() string {
	if al.Amount < 0 {
		return fmt.Sprintf("Withdraw %.2f from the initial value", -al.Amount)
	}
	return fmt.Sprintf("Add a lump sum of %.2f to the initial value", al.Amount)
}

func (al *AddLumpSum) Validate(base *domain.Scenario) error {
	if err := validateBase(al.Name(), base); err != nil {
		return err
	}
	if math.IsNaN(al.Amount) || math.IsInf(al.Amount, 0) {
		return NewTransformError(al.Name(), "validate", "amount must be finite", nil)
	}
	if base.Request.InitialValue+al.Amount < 0 {
		return NewTransformError(al.Name(), "validate",
			fmt.Sprintf("withdrawal of %.2f exceeds the initial value %.2f", -al.Amount, base.Request.InitialValue), nil)
	}
	return nil
}

func (al *AddLumpSum) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.InitialValue = base.Request.InitialValue + al.Amount
	return modified, nil
}

func requireContributionInput(name string, base *domain.Scenario) error {
	if base.Request.Mode == domain.ModeContributionForTerm {
		return NewTransformError(name, "validate", fmt.Sprintf("scenario %s solves for the contribution", base.Name), nil)
	}
	return nil
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
