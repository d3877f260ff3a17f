package domain

import "fmt"

// Scenario is one named request inside a plan
type Scenario struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Request     CalculationRequest `json:"request" yaml:"request"`
}

// Plan groups scenarios that are computed and compared together
type Plan struct {
	Name      string     `json:"name,omitempty"`
	Locale    Locale     `json:"locale,omitempty"`
	Target    float64    `json:"target,omitempty"`
	Base      string     `json:"base,omitempty"`
	Scenarios []Scenario `json:"scenarios"`
}

// BaseScenario returns the scenario named by Base, or the first one when Base is empty
func (p *Plan) BaseScenario() (*Scenario, error) {
	if len(p.Scenarios) == 0 {
		return nil, fmt.Errorf("plan has no scenarios")
	}
	if p.Base == "" {
		return &p.Scenarios[0], nil
	}
	for i := range p.Scenarios {
		if p.Scenarios[i].Name == p.Base {
			return &p.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("base scenario %q not found", p.Base)
}

// ScenarioByName finds a scenario by name
func (p *Plan) ScenarioByName(name string) (*Scenario, bool) {
	for i := range p.Scenarios {
		if p.Scenarios[i].Name == name {
			return &p.Scenarios[i], true
		}
	}
	return nil, false
}
