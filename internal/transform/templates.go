package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Monthly effort
	registry.Register(Template{
		Name:        "contribution_plus_10pct",
		Description: "Contribute 10% more every month",
		Transforms:  []ScenarioTransform{&AdjustContribution{Percent: 10}},
	})
	registry.Register(Template{
		Name:        "contribution_plus_25pct",
		Description: "Contribute 25% more every month",
		Transforms:  []ScenarioTransform{&AdjustContribution{Percent: 25}},
	})
	registry.Register(Template{
		Name:        "contribution_double",
		Description: "Double the monthly contribution",
		Transforms:  []ScenarioTransform{&AdjustContribution{Percent: 100}},
	})

	// Rate
	registry.Register(Template{
		Name:        "rate_plus_1pt",
		Description: "Earn one percentage point more",
		Transforms:  []ScenarioTransform{&AdjustRate{Points: 1}},
	})
	registry.Register(Template{
		Name:        "rate_minus_1pt",
		Description: "Earn one percentage point less",
		Transforms:  []ScenarioTransform{&AdjustRate{Points: -1}},
	})
	registry.Register(Template{
		Name:        "rate_minus_2pt",
		Description: "Earn two percentage points less",
		Transforms:  []ScenarioTransform{&AdjustRate{Points: -2}},
	})

	// Up-front money
	registry.Register(Template{
		Name:        "lump_sum_10k",
		Description: "Start with 10,000 more",
		Transforms:  []ScenarioTransform{&AddLumpSum{Amount: 10_000}},
	})
	registry.Register(Template{
		Name:        "lump_sum_50k",
		Description: "Start with 50,000 more",
		Transforms:  []ScenarioTransform{&AddLumpSum{Amount: 50_000}},
	})

	// Horizon (contribution-for-term scenarios only)
	registry.Register(Template{
		Name:        "term_minus_5yr",
		Description: "Reach the target 5 years sooner",
		Transforms:  []ScenarioTransform{&AdjustTerm{Years: -5}},
	})
	registry.Register(Template{
		Name:        "term_plus_5yr",
		Description: "Allow 5 more years to reach the target",
		Transforms:  []ScenarioTransform{&AdjustTerm{Years: 5}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "conservative",
		Description: "Two points lower rate (a cautious market outlook)",
		Transforms:  []ScenarioTransform{&AdjustRate{Points: -2}},
	})
	registry.Register(Template{
		Name:        "head_start",
		Description: "10,000 up front and 10% more every month",
		Transforms: []ScenarioTransform{
			&AddLumpSum{Amount: 10_000},
			&AdjustContribution{Percent: 10},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base scenario cannot be nil")
		}
		return clone(base), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Monthly Contribution", "Interest Rate", "Lump Sum", "Horizon", "Combination Strategies"}
	categories := map[string][]Template{}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "contribution_"):
			categories["Monthly Contribution"] = append(categories["Monthly Contribution"], template)
		case strings.HasPrefix(name, "rate_"):
			categories["Interest Rate"] = append(categories["Interest Rate"], template)
		case strings.HasPrefix(name, "lump_sum_"):
			categories["Lump Sum"] = append(categories["Lump Sum"], template)
		case strings.HasPrefix(name, "term_"):
			categories["Horizon"] = append(categories["Horizon"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fmgo compare plan.yaml --with contribution_plus_10pct,rate_minus_1pt\n")
	sb.WriteString("  fmgo compare plan.yaml --with conservative,head_start\n")

	return sb.String()
}
