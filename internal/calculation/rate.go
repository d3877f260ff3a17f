package calculation

import (
	"math"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// NormalizeRate converts a percentage rate into the effective monthly decimal
// rate. Annual rates use the effective conversion (1+i)^(1/12)-1 so that twelve
// months of compounding reproduce the annual rate exactly. Negative and
// non-finite rates are treated as 0.
func NormalizeRate(rate float64, period domain.RatePeriod) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0
	}
	if period == domain.PeriodMonthly {
		return rate / 100
	}
	return math.Pow(1+rate/100, 1.0/12) - 1
}

// AnnualEquivalent converts a monthly decimal rate back to an annual percentage
func AnnualEquivalent(monthlyRate float64) float64 {
	return (math.Pow(1+monthlyRate, 12) - 1) * 100
}
