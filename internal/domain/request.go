package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// CalculationMode selects which projection question is answered
type CalculationMode string

const (
	// ModeTimeToTarget solves for elapsed time given a fixed monthly contribution
	ModeTimeToTarget CalculationMode = "TIME_TO_TARGET"
	// ModeContributionForTerm solves for the monthly contribution given a fixed horizon
	ModeContributionForTerm CalculationMode = "CONTRIBUTION_FOR_TERM"
)

// RatePeriod is the unit an interest rate is expressed in
type RatePeriod string

const (
	PeriodAnnual  RatePeriod = "ANNUAL"
	PeriodMonthly RatePeriod = "MONTHLY"
)

var (
	// ErrInvalidMode is returned when a calculation mode cannot be recognised
	ErrInvalidMode = errors.New("invalid calculation mode")
	// ErrInvalidPeriod is returned when a rate period cannot be recognised
	ErrInvalidPeriod = errors.New("invalid rate period")
)

var modeAliases = map[string]CalculationMode{
	"time_to_target":        ModeTimeToTarget,
	"time-to-target":        ModeTimeToTarget,
	"time_to_million":       ModeTimeToTarget,
	"time":                  ModeTimeToTarget,
	"prazo":                 ModeTimeToTarget,
	"contribution_for_term": ModeContributionForTerm,
	"contribution-for-term": ModeContributionForTerm,
	"contribution_needed":   ModeContributionForTerm,
	"contribution":          ModeContributionForTerm,
	"aporte":                ModeContributionForTerm,
}

var periodAliases = map[string]RatePeriod{
	"annual":   PeriodAnnual,
	"annually": PeriodAnnual,
	"yearly":   PeriodAnnual,
	"year":     PeriodAnnual,
	"a.a.":     PeriodAnnual,
	"anual":    PeriodAnnual,
	"monthly":  PeriodMonthly,
	"month":    PeriodMonthly,
	"a.m.":     PeriodMonthly,
	"mensal":   PeriodMonthly,
}

// ParseMode resolves a user supplied mode name, accepting a few aliases
func ParseMode(s string) (CalculationMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if mode, ok := modeAliases[key]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ParsePeriod resolves a user supplied rate period name
func ParsePeriod(s string) (RatePeriod, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if period, ok := periodAliases[key]; ok {
		return period, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// IsValid reports whether the mode is one of the known values
func (m CalculationMode) IsValid() bool {
	return m == ModeTimeToTarget || m == ModeContributionForTerm
}

// IsValid reports whether the period is one of the known values
func (p RatePeriod) IsValid() bool {
	return p == PeriodAnnual || p == PeriodMonthly
}

func (m CalculationMode) MarshalText() ([]byte, error) { return []byte(m), nil }

func (m *CalculationMode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (p RatePeriod) MarshalText() ([]byte, error) { return []byte(p), nil }

func (p *RatePeriod) UnmarshalText(text []byte) error {
	period, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = period
	return nil
}

// CalculationRequest is the validated input record handed to the engine.
// MonthlyContribution is only read in ModeTimeToTarget and TargetYears only
// in ModeContributionForTerm.
type CalculationRequest struct {
	Mode                CalculationMode `json:"mode" yaml:"mode"`
	InitialValue        float64         `json:"initialValue" yaml:"initial_value"`
	MonthlyContribution float64         `json:"monthlyContribution,omitempty" yaml:"monthly_contribution,omitempty"`
	TargetYears         int             `json:"targetYears,omitempty" yaml:"target_years,omitempty"`
	InterestRate        float64         `json:"interestRate" yaml:"interest_rate"`
	RatePeriod          RatePeriod      `json:"ratePeriod" yaml:"rate_period"`
}

// DefaultRequest returns the form defaults of the calculator
func DefaultRequest() CalculationRequest {
	return CalculationRequest{
		Mode:                ModeTimeToTarget,
		InitialValue:        0,
		MonthlyContribution: 500,
		TargetYears:         10,
		InterestRate:        10,
		RatePeriod:          PeriodAnnual,
	}
}

// Normalize returns a copy of the request that the engine can always process.
// Unknown modes fall back to ModeTimeToTarget and unknown periods to
// PeriodAnnual; negative or non-finite amounts and rates become 0; a
// non-positive horizon becomes 1 year. The field the mode does not use is
// zeroed so that equal requests compare equal.
func (r CalculationRequest) Normalize() CalculationRequest {
	out := r
	if !out.Mode.IsValid() {
		out.Mode = ModeTimeToTarget
	}
	if !out.RatePeriod.IsValid() {
		out.RatePeriod = PeriodAnnual
	}
	out.InitialValue = nonNegative(out.InitialValue)
	out.InterestRate = nonNegative(out.InterestRate)

	switch out.Mode {
	case ModeTimeToTarget:
		out.MonthlyContribution = nonNegative(out.MonthlyContribution)
		out.TargetYears = 0
	case ModeContributionForTerm:
		out.MonthlyContribution = 0
		if out.TargetYears <= 0 {
			out.TargetYears = 1
		}
	}
	return out
}

// HorizonMonths returns the fixed horizon for ModeContributionForTerm, 0 otherwise
func (r CalculationRequest) HorizonMonths() int {
	if r.Mode != ModeContributionForTerm {
		return 0
	}
	return r.TargetYears * 12
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
