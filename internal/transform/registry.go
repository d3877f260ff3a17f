package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("add_lump_sum", createAddLumpSum)
	registry.Register("adjust_rate", createAdjustRate)
	registry.Register("set_rate", createSetRate)
	registry.Register("adjust_term", createAdjustTerm)
	registry.Register("switch_mode", createSwitchMode)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_rate:rate=0.8,period=monthly"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createAdjustContribution(params map[string]string) (ScenarioTransform, error) {
	percent, err := requireNumber("adjust_contribution", params, "percent")
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Percent: percent}, nil
}

func createSetContribution(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireNumber("set_contribution", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Amount: amount}, nil
}

func createAddLumpSum(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireNumber("add_lump_sum", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddLumpSum{Amount: amount}, nil
}

func createAdjustRate(params map[string]string) (ScenarioTransform, error) {
	points, err := requireNumber("adjust_rate", params, "points")
	if err != nil {
		return nil, err
	}
	return &AdjustRate{Points: points}, nil
}

func createSetRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireNumber("set_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	t := &SetRate{Rate: rate}
	if p, ok := params["period"]; ok {
		period, err := domain.ParsePeriod(p)
		if err != nil {
			return nil, err
		}
		t.Period = period
	}
	return t, nil
}

func createAdjustTerm(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("adjust_term requires 'years' parameter")
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &AdjustTerm{Years: years}, nil
}

func createSwitchMode(params map[string]string) (ScenarioTransform, error) {
	modeStr, ok := params["mode"]
	if !ok {
		return nil, fmt.Errorf("switch_mode requires 'mode' parameter")
	}
	mode, err := domain.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	t := &SwitchMode{Mode: mode}
	if mode == domain.ModeContributionForTerm {
		yearsStr, ok := params["years"]
		if !ok {
			return nil, fmt.Errorf("switch_mode to %s requires 'years' parameter", mode)
		}
		if t.Years, err = strconv.Atoi(yearsStr); err != nil {
			return nil, fmt.Errorf("invalid years value: %w", err)
		}
		return t, nil
	}
	if _, ok := params["contribution"]; ok {
		if t.Contribution, err = requireNumber("switch_mode", params, "contribution"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func requireNumber(transform string, params map[string]string, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d.InexactFloat64(), nil
}
