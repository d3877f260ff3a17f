package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Limits bounds what the strict validator accepts
type Limits struct {
	MaxAmount      float64
	MaxAnnualRate  float64 // percent
	MaxMonthlyRate float64 // percent
	MaxYears       int
}

// DefaultLimits returns the validator bounds used by the CLI and the server
func DefaultLimits() Limits {
	return Limits{
		MaxAmount:      1e12,
		MaxAnnualRate:  1000,
		MaxMonthlyRate: 100,
		MaxYears:       100,
	}
}

// ScenarioSpec is the file model of one request. Money and rates are decimals
// so that file values are validated exactly before conversion.
type ScenarioSpec struct {
	Name                string           `yaml:"name,omitempty"`
	Description         string           `yaml:"description,omitempty"`
	Mode                string           `yaml:"mode,omitempty"`
	InitialValue        decimal.Decimal  `yaml:"initial_value"`
	MonthlyContribution *decimal.Decimal `yaml:"monthly_contribution,omitempty"`
	TargetYears         *int             `yaml:"target_years,omitempty"`
	InterestRate        decimal.Decimal  `yaml:"interest_rate"`
	RatePeriod          string           `yaml:"rate_period,omitempty"`
}

// PlanFile is the file model of an input file. A file either lists
// scenarios or carries a single request inline; the inline name names the
// plan when scenarios are listed.
type PlanFile struct {
	Locale    string           `yaml:"locale,omitempty"`
	Target    *decimal.Decimal `yaml:"target,omitempty"`
	Base      string           `yaml:"base,omitempty"`
	Scenarios []ScenarioSpec   `yaml:"scenarios,omitempty"`

	ScenarioSpec `yaml:",inline"`
}

// InputParser handles parsing and validation of calculation input
type InputParser struct {
	Limits Limits
}

// NewInputParser creates a new input parser with the default limits
func NewInputParser() *InputParser {
	return &InputParser{Limits: DefaultLimits()}
}

// LoadFromFile loads a plan from a YAML file. A single-request file yields a
// plan with one scenario named after the file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if len(plan.Scenarios) == 1 && plan.Scenarios[0].Name == "" {
		plan.Scenarios[0].Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return plan, nil
}

// LoadRequest loads a file and returns its base scenario's request
func (ip *InputParser) LoadRequest(filename string) (domain.CalculationRequest, error) {
	plan, err := ip.LoadFromFile(filename)
	if err != nil {
		return domain.CalculationRequest{}, err
	}
	base, err := plan.BaseScenario()
	if err != nil {
		return domain.CalculationRequest{}, err
	}
	return base.Request, nil
}

// Parse decodes and validates YAML input
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	plan, err := ip.buildPlan(&file)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return plan, nil
}

func (ip *InputParser) buildPlan(file *PlanFile) (*domain.Plan, error) {
	plan := &domain.Plan{Name: file.Name, Base: file.Base}
	if len(file.Scenarios) > 0 && file.Mode != "" {
		return nil, fmt.Errorf("a file cannot mix inline request fields with a scenarios list")
	}

	if file.Locale != "" {
		locale, err := domain.ParseLocale(file.Locale)
		if err != nil {
			return nil, err
		}
		plan.Locale = locale
	}
	if file.Target != nil {
		if file.Target.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("target must be positive")
		}
		plan.Target = file.Target.InexactFloat64()
	}

	specs := file.Scenarios
	if len(specs) == 0 {
		if file.ScenarioSpec.Mode == "" {
			return nil, fmt.Errorf("no scenarios provided")
		}
		specs = []ScenarioSpec{file.ScenarioSpec}
	}

	seen := make(map[string]bool, len(specs))
	for i := range specs {
		scenario, err := ip.buildScenario(&specs[i])
		if err != nil {
			if specs[i].Name != "" {
				return nil, fmt.Errorf("scenario %d (%s) validation failed: %w", i, specs[i].Name, err)
			}
			return nil, fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if scenario.Name == "" && len(specs) > 1 {
			scenario.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[scenario.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
		plan.Scenarios = append(plan.Scenarios, scenario)
	}

	if _, err := plan.BaseScenario(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (ip *InputParser) buildScenario(spec *ScenarioSpec) (domain.Scenario, error) {
	if err := ip.validateScenarioSpec(spec); err != nil {
		return domain.Scenario{}, err
	}

	mode, err := domain.ParseMode(spec.Mode)
	if err != nil {
		return domain.Scenario{}, err
	}
	period := domain.PeriodAnnual
	if spec.RatePeriod != "" {
		if period, err = domain.ParsePeriod(spec.RatePeriod); err != nil {
			return domain.Scenario{}, err
		}
	}

	req := domain.CalculationRequest{
		Mode:         mode,
		InitialValue: spec.InitialValue.InexactFloat64(),
		InterestRate: spec.InterestRate.InexactFloat64(),
		RatePeriod:   period,
	}
	switch mode {
	case domain.ModeTimeToTarget:
		if spec.MonthlyContribution != nil {
			req.MonthlyContribution = spec.MonthlyContribution.InexactFloat64()
		}
	case domain.ModeContributionForTerm:
		if spec.TargetYears == nil {
			return domain.Scenario{}, fmt.Errorf("target_years is required for %s", mode)
		}
		req.TargetYears = *spec.TargetYears
	}

	if err := ip.ValidateRequest(req); err != nil {
		return domain.Scenario{}, err
	}
	return domain.Scenario{Name: spec.Name, Description: spec.Description, Request: req}, nil
}

// validateScenarioSpec checks the decimal values before they are converted
func (ip *InputParser) validateScenarioSpec(spec *ScenarioSpec) error {
	maxAmount := decimal.NewFromFloat(ip.Limits.MaxAmount)

	if spec.InitialValue.LessThan(decimal.Zero) {
		return fmt.Errorf("initial value cannot be negative")
	}
	if spec.InitialValue.GreaterThan(maxAmount) {
		return fmt.Errorf("initial value cannot exceed %s", maxAmount.String())
	}
	if spec.MonthlyContribution != nil {
		if spec.MonthlyContribution.LessThan(decimal.Zero) {
			return fmt.Errorf("monthly contribution cannot be negative")
		}
		if spec.MonthlyContribution.GreaterThan(maxAmount) {
			return fmt.Errorf("monthly contribution cannot exceed %s", maxAmount.String())
		}
	}
	if spec.InterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("interest rate cannot be negative")
	}
	return nil
}

// ValidateRequest applies the strict boundary rules to a request. The engine
// itself accepts anything; this is where malformed input is rejected.
func (ip *InputParser) ValidateRequest(req domain.CalculationRequest) error {
	var errs []error

	if !req.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrInvalidMode, req.Mode))
	}
	if !req.RatePeriod.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, req.RatePeriod))
	}
	if err := validateAmount("initial value", req.InitialValue, ip.Limits.MaxAmount); err != nil {
		errs = append(errs, err)
	}

	maxRate := ip.Limits.MaxAnnualRate
	if req.RatePeriod == domain.PeriodMonthly {
		maxRate = ip.Limits.MaxMonthlyRate
	}
	if err := validateAmount("interest rate", req.InterestRate, maxRate); err != nil {
		errs = append(errs, err)
	}

	switch req.Mode {
	case domain.ModeTimeToTarget:
		if err := validateAmount("monthly contribution", req.MonthlyContribution, ip.Limits.MaxAmount); err != nil {
			errs = append(errs, err)
		}
	case domain.ModeContributionForTerm:
		if req.TargetYears <= 0 {
			errs = append(errs, fmt.Errorf("target years must be positive, got %d", req.TargetYears))
		} else if req.TargetYears > ip.Limits.MaxYears {
			errs = append(errs, fmt.Errorf("target years cannot exceed %d, got %d", ip.Limits.MaxYears, req.TargetYears))
		} else if req.RatePeriod.IsValid() && !ip.growthIsFinite(req) {
			errs = append(errs, fmt.Errorf("interest rate %v%% over %d years grows beyond representable amounts", req.InterestRate, req.TargetYears))
		}
	}

	return errors.Join(errs...)
}

// growthIsFinite reports whether the largest accepted amount compounded over
// the request's term stays a finite float64
func (ip *InputParser) growthIsFinite(req domain.CalculationRequest) bool {
	r := calculation.NormalizeRate(req.InterestRate, req.RatePeriod)
	logGrowth := float64(req.TargetYears*12) * math.Log1p(r)
	headroom := math.Log(math.MaxFloat64) - math.Log(math.Max(ip.Limits.MaxAmount, 1)) - 1
	return logGrowth <= headroom
}

func validateAmount(name string, value, max float64) error {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return fmt.Errorf("%s must be a finite number", name)
	case value < 0:
		return fmt.Errorf("%s cannot be negative", name)
	case value > max:
		return fmt.Errorf("%s cannot exceed %.0f", name, max)
	}
	return nil
}
