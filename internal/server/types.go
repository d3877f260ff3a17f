package server

import (
	"github.com/rgehrsitz/fmgo/internal/breakeven"
	"github.com/rgehrsitz/fmgo/internal/compare"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
)

// ProjectionRequest is the JSON body for POST /api/v1/projections.
type ProjectionRequest struct {
	domain.CalculationRequest
	Locale         string `json:"locale,omitempty"`
	IncludeMonthly bool   `json:"includeMonthly,omitempty"`
}

// ProjectionResponse is the JSON response for a projection.
type ProjectionResponse struct {
	*domain.CalculationResult
	Headline  string           `json:"headline"`
	Breakdown output.Breakdown `json:"breakdown"`
	RequestID string           `json:"request_id"`
}

// SensitivityRequest is the JSON body for POST /api/v1/projections/sensitivity.
type SensitivityRequest struct {
	Request domain.CalculationRequest `json:"request"`
	MinRate float64                   `json:"minRate"`
	MaxRate float64                   `json:"maxRate"`
	Steps   int                       `json:"steps"`
}

// SensitivityResponse is the JSON response for a rate sweep.
type SensitivityResponse struct {
	*domain.RateSensitivity
	RequestID string `json:"request_id"`
}

// BreakEvenRequest is the JSON body for POST /api/v1/break-even. An empty
// target searches every field.
type BreakEvenRequest struct {
	Request      domain.CalculationRequest `json:"request"`
	Target       string                    `json:"target"`
	HorizonYears int                       `json:"horizonYears"`
}

// BreakEvenResponse carries either a single search or one per field.
type BreakEvenResponse struct {
	Result    *breakeven.OptimizationResult     `json:"result,omitempty"`
	All       *breakeven.MultiDimensionalResult `json:"all,omitempty"`
	RequestID string                            `json:"request_id"`
}

// ComparisonResponse is the JSON response for POST /api/v1/comparisons.
type ComparisonResponse struct {
	*compare.ComparisonSet
	RequestID string `json:"request_id"`
}

// TemplateInfo describes one what-if template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
