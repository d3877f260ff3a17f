package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// MaxSensitivitySteps bounds the number of rates in one sweep
const MaxSensitivitySteps = 200

// SensitivityAnalyzer recomputes a request across a range of interest rates
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates an analyzer; a nil engine gets the default one
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// SweepRate evaluates req at steps evenly spaced rates from minRate to maxRate
// inclusive, in the request's own rate period. Deltas are against the result
// at the request's own rate.
func (sa *SensitivityAnalyzer) SweepRate(ctx context.Context, req domain.CalculationRequest, minRate, maxRate float64, steps int) (*domain.RateSensitivity, error) {
	if err := validateSweep(minRate, maxRate, steps); err != nil {
		return nil, err
	}

	base, err := sa.calculationEngine.Compute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to compute base projection: %w", err)
	}

	points := make([]domain.RateSensitivityPoint, 0, steps)
	for _, rate := range sa.generateRates(minRate, maxRate, steps) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modified := req
		modified.InterestRate = rate

		result, err := sa.calculationEngine.Compute(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to compute projection for rate %.4f: %w", rate, err)
		}
		points = append(points, sa.buildPoint(result, base, rate))
	}

	return &domain.RateSensitivity{
		BaseRequest: base.Request,
		MinRate:     minRate,
		MaxRate:     maxRate,
		Steps:       steps,
		Points:      points,
	}, nil
}

func validateSweep(minRate, maxRate float64, steps int) error {
	switch {
	case math.IsNaN(minRate) || math.IsNaN(maxRate) || math.IsInf(minRate, 0) || math.IsInf(maxRate, 0):
		return fmt.Errorf("rate range must be finite")
	case minRate < 0:
		return fmt.Errorf("minimum rate cannot be negative, got %.4f", minRate)
	case minRate > maxRate:
		return fmt.Errorf("minimum rate %.4f exceeds maximum rate %.4f", minRate, maxRate)
	case steps < 2:
		return fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	case steps > MaxSensitivitySteps:
		return fmt.Errorf("sweep is limited to %d steps, got %d", MaxSensitivitySteps, steps)
	}
	return nil
}

func (sa *SensitivityAnalyzer) generateRates(minRate, maxRate float64, steps int) []float64 {
	rates := make([]float64, steps)
	stepSize := (maxRate - minRate) / float64(steps-1)
	for i := range rates {
		rates[i] = minRate + stepSize*float64(i)
	}
	rates[steps-1] = maxRate
	return rates
}

func (sa *SensitivityAnalyzer) buildPoint(result, base *domain.CalculationResult, rate float64) domain.RateSensitivityPoint {
	point := domain.RateSensitivityPoint{
		InterestRate:                rate,
		MonthlyRate:                 result.MonthlyRate,
		IsBase:                      math.Abs(rate-base.Request.InterestRate) < 1e-9,
		Outcome:                     result.Outcome,
		TotalMonths:                 result.TotalMonths,
		FinalAmount:                 result.FinalAmount,
		TotalInvested:               result.TotalInvested,
		TotalInterest:               result.TotalInterest,
		RequiredMonthlyContribution: result.RequiredMonthlyContribution,
		MonthsDelta:                 result.TotalMonths - base.TotalMonths,
		InterestDelta:               result.TotalInterest - base.TotalInterest,
	}
	if c, ok := result.RequiredContribution(); ok {
		if b, ok := base.RequiredContribution(); ok {
			point.ContributionDelta = c - b
		}
	}
	return point
}
