package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SpecFromRequest converts a request into its file model
func SpecFromRequest(name string, req domain.CalculationRequest) ScenarioSpec {
	spec := ScenarioSpec{
		Name:         name,
		Mode:         string(req.Mode),
		InitialValue: decimal.NewFromFloat(req.InitialValue),
		InterestRate: decimal.NewFromFloat(req.InterestRate),
		RatePeriod:   string(req.RatePeriod),
	}
	switch req.Mode {
	case domain.ModeContributionForTerm:
		years := req.TargetYears
		spec.TargetYears = &years
	default:
		contribution := decimal.NewFromFloat(req.MonthlyContribution)
		spec.MonthlyContribution = &contribution
	}
	return spec
}

// SaveRequest writes a single request to a YAML file that LoadFromFile reads back
func SaveRequest(req domain.CalculationRequest, filename string) error {
	data, err := yaml.Marshal(SpecFromRequest("", req))
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// SavePlan writes every scenario of a plan to a YAML file
func SavePlan(plan *domain.Plan, filename string) error {
	file := PlanFile{Base: plan.Base}
	file.Name = plan.Name
	if plan.Locale != "" {
		file.Locale = string(plan.Locale)
	}
	if plan.Target > 0 {
		target := decimal.NewFromFloat(plan.Target)
		file.Target = &target
	}
	for _, s := range plan.Scenarios {
		spec := SpecFromRequest(s.Name, s.Request)
		spec.Description = s.Description
		file.Scenarios = append(file.Scenarios, spec)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
