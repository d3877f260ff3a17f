package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Overrides the plan's base scenario
	Alternatives     []string // Plan scenarios to compare; empty means every other scenario
	Templates        []string // What-if templates applied to the base scenario
	ConfigPath       string
}

// Compare runs the base scenario of a plan against its other scenarios and
// any what-if templates.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan *domain.Plan,
	options CompareOptions,
) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	var baseScenario *domain.Scenario
	if options.BaseScenarioName != "" {
		s, ok := plan.ScenarioByName(options.BaseScenarioName)
		if !ok {
			return nil, fmt.Errorf("base scenario %s not found in plan", options.BaseScenarioName)
		}
		baseScenario = s
	} else {
		s, err := plan.BaseScenario()
		if err != nil {
			return nil, err
		}
		baseScenario = s
	}

	engine := ce.engineFor(plan)

	baseResult, err := engine.Compute(ctx, baseScenario.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	base := ce.MetricsCalculator.CalculateMetrics(baseScenario, baseResult)

	alternatives := []ComparisonResult{}
	addAlternative := func(scenario *domain.Scenario) error {
		result, err := engine.Compute(ctx, scenario.Request)
		if err != nil {
			return fmt.Errorf("failed to calculate scenario %s: %w", scenario.Name, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(scenario, result)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, base))
		return nil
	}

	if len(options.Alternatives) > 0 {
		for _, name := range options.Alternatives {
			scenario, ok := plan.ScenarioByName(name)
			if !ok {
				return nil, fmt.Errorf("alternative scenario %s not found", name)
			}
			if err := addAlternative(scenario); err != nil {
				return nil, err
			}
		}
	} else if len(options.Templates) == 0 {
		for i := range plan.Scenarios {
			if plan.Scenarios[i].Name == baseScenario.Name {
				continue
			}
			if err := addAlternative(&plan.Scenarios[i]); err != nil {
				return nil, err
			}
		}
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseScenario.Name + "_" + template.Name
		modified.Description = template.Description

		if err := addAlternative(modified); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		PlanName:           plan.Name,
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &base,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
		Locale:             engine.Config.Locale,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	plan *domain.Plan,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	return ce.Compare(ctx, plan, CompareOptions{
		BaseScenarioName: baseScenarioName,
		Alternatives:     alternativeScenarioNames,
	})
}

// engineFor returns an engine carrying the plan's target and locale overrides
func (ce *CompareEngine) engineFor(plan *domain.Plan) *calculation.CalculationEngine {
	if plan.Target <= 0 && plan.Locale == "" {
		return ce.CalcEngine
	}
	cfg := ce.CalcEngine.Config
	if plan.Target > 0 {
		cfg.Target = plan.Target
	}
	if plan.Locale != "" {
		cfg.Locale = plan.Locale
	}
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	engine.SetLogger(ce.CalcEngine.Logger)
	engine.Debug = ce.CalcEngine.Debug
	return engine
}
