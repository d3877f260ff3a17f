package transform

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// AdjustRate shifts the interest rate by a number of percentage points in the
// scenario's own period.
type AdjustRate struct {
	Points float64
}

func (ar *AdjustRate) Name() string {
	return "adjust_rate"
}

func (ar *AdjustRate) Description() string {
	return fmt.Sprintf("Shift the interest rate by %+.2f percentage points", ar.Points)
}

func (ar *AdjustRate) Validate(base *domain.Scenario) error {
	if err := validateBase(ar.Name(), base); err != nil {
		return err
	}
	if math.IsNaN(ar.Points) || math.IsInf(ar.Points, 0) {
		return NewTransformError(ar.Name(), "validate", "points must be finite", nil)
	}
	if base.Request.InterestRate+ar.Points < 0 {
		return NewTransformError(ar.Name(), "validate",
			fmt.Sprintf("rate %.2f%% cannot drop by %.2f points", base.Request.InterestRate, -ar.Points), nil)
	}
	return nil
}

func (ar *AdjustRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.InterestRate = base.Request.InterestRate + ar.Points
	return modified, nil
}

// SetRate replaces the rate and, when Period is set, its period.
type SetRate struct {
	Rate   float64
	Period domain.RatePeriod
}

func (sr *SetRate) Name() string {
	return "set_rate"
}

func (sr *SetRate) Description() string {
	if sr.Period == "" {
		return fmt.Sprintf("Use an interest rate of %.2f%%", sr.Rate)
	}
	return fmt.Sprintf("Use an interest rate of %.2f%% %s", sr.Rate, sr.Period)
}

func (sr *SetRate) Validate(base *domain.Scenario) error {
	if err := validateBase(sr.Name(), base); err != nil {
		return err
	}
	if !isNonNegative(sr.Rate) {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %v", sr.Rate), nil)
	}
	if sr.Period != "" && !sr.Period.IsValid() {
		return NewTransformError(sr.Name(), "validate", "unknown period", domain.ErrInvalidPeriod)
	}
	return nil
}

func (sr *SetRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := clone(base)
	modified.Request.InterestRate = sr.Rate
	if sr.Period != "" {
		modified.Request.RatePeriod = sr.Period
	}
	return modified, nil
}
