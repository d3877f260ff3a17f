package transform

import (
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// AdjustTerm lengthens or shortens the fixed horizon of a contribution-for-term scenario.
type AdjustTerm struct {
	Years int
}

func (at *AdjustTerm) Name() string {
	return "adjust_term"
}

func (at *AdjustTerm) Description() string {
	return fmt.Sprintf("Change the horizon by %+d years", at.Years)
}

func (at *AdjustTerm) Validate(base *domain.Scenario) error {
	if err := validateBase(at.Name(), base); err != nil {
		return err
	}
	if base.Request.Mode != domain.ModeContributionForTerm {
		return NewTransformError(at.Name(), "validate", fmt.Sprintf("scenario %s has no fixed horizon", base.Name), nil)
	}
	if base.Request.TargetYears+at.Years < 1 {
		return NewTransformError(at.Name(), "validate",
			fmt.Sprintf("horizon of %d years cannot shrink by %d", base.Request.TargetYears, -at.Years), nil)
	}
	return nil
}

func (at *AdjustTerm) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.TargetYears = base.Request.TargetYears + at.Years
	return modified, nil
}

// SwitchMode flips a scenario to the other calculation mode, supplying the
// input the new mode needs.
type SwitchMode struct {
	Mode         domain.CalculationMode
	Years        int     // required for ContributionForTerm
	Contribution float64 // used for TimeToTarget
}

func (sm *SwitchMode) Name() string {
	return "switch_mode"
}

func (sm *SwitchMode) Description() string {
	if sm.Mode == domain.ModeContributionForTerm {
		return fmt.Sprintf("Solve the contribution needed within %d years", sm.Years)
	}
	return fmt.Sprintf("Solve the time needed contributing %.2f per month", sm.Contribution)
}

func (sm *SwitchMode) Validate(base *domain.Scenario) error {
	if err := validateBase(sm.Name(), base); err != nil {
		return err
	}
	switch sm.Mode {
	case domain.ModeContributionForTerm:
		if sm.Years < 1 {
			return NewTransformError(sm.Name(), "validate", fmt.Sprintf("years must be positive, got %d", sm.Years), nil)
		}
	case domain.ModeTimeToTarget:
		if !isNonNegative(sm.Contribution) {
			return NewTransformError(sm.Name(), "validate", fmt.Sprintf("contribution must be non-negative, got %v", sm.Contribution), nil)
		}
	default:
		return NewTransformError(sm.Name(), "validate", "unknown mode", domain.ErrInvalidMode)
	}
	return nil
}

func (sm *SwitchMode) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.Mode = sm.Mode
	if sm.Mode == domain.ModeContributionForTerm {
		modified.Request.TargetYears = sm.Years
		modified.Request.MonthlyContribution = 0
	} else {
		modified.Request.MonthlyContribution = sm.Contribution
		modified.Request.TargetYears = 0
	}
	return modified, nil
}
