package transform

import (
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// ScenarioTransform is one what-if edit of a scenario's request: more money
// each month, a lump sum up front, a different rate or a shorter horizon.
// Apply never mutates its argument.
type ScenarioTransform interface {
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name is the registry key, e.g. "adjust_rate"
	Name() string
	Description() string

	// Validate reports whether Apply would succeed on base
	Validate(base *domain.Scenario) error
}

// ApplyTransforms validates and applies transforms in order, each one seeing
// the previous one's output. The base is left untouched.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := clone(base)
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// clone copies a scenario; the request is a value so a shallow copy is enough
func clone(s *domain.Scenario) *domain.Scenario {
	c := *s
	return &c
}

// TransformError is returned when a transform rejects its base or parameters
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.TransformName, e.Operation, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error { return e.Err }

// NewTransformError builds a *TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{TransformName: transformName, Operation: operation, Reason: reason, Err: err}
}

func validateBase(name string, base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	return nil
}
