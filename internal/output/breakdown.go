package output

import (
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// Breakdown splits the final amount into what was invested and what interest added
type Breakdown struct {
	Invested         float64 `json:"invested"`
	Interest         float64 `json:"interest"`
	Final            float64 `json:"final"`
	InvestedShare    float64 `json:"investedShare"`    // percent of final
	InterestShare    float64 `json:"interestShare"`    // percent of final
	ReturnOnInvested float64 `json:"returnOnInvested"` // interest as percent of invested
}

// NewBreakdown derives the composition of a result's final amount
func NewBreakdown(result *domain.CalculationResult) Breakdown {
	b := Breakdown{
		Invested: result.TotalInvested,
		Interest: result.TotalInterest,
		Final:    result.FinalAmount,
	}
	if b.Final > 0 {
		b.InvestedShare = b.Invested / b.Final * 100
		b.InterestShare = b.Interest / b.Final * 100
	}
	if b.Invested > 0 {
		b.ReturnOnInvested = b.Interest / b.Invested * 100
	}
	return b
}

// Headline is the large line of a result: the monthly amount in contribution
// mode, the elapsed time otherwise.
func Headline(result *domain.CalculationResult, locale domain.Locale) string {
	labels := LabelsFor(locale)
	if c, ok := result.RequiredContribution(); ok {
		return FormatMoney(c, locale) + " " + labels.PerMonthSuffix
	}
	if result.Outcome == domain.OutcomeTargetNotReached {
		return labels.TargetNotReached
	}
	return fmt.Sprintf(labels.YearsAndMonths, result.Years(), result.RemainingMonths())
}

// Bar renders a two segment text bar of the given width, e.g. "█████░░░░░"
func (b Breakdown) Bar(width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(b.InvestedShare/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, '█')
		} else {
			bar = append(bar, '░')
		}
	}
	return string(bar)
}
