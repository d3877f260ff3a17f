package calculation

import (
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// AggregateOptions carries what the aggregator needs beyond the ledger itself
type AggregateOptions struct {
	Outcome   domain.Outcome
	Locale    domain.Locale
	Target    float64
	MaxMonths int
}

// Aggregate turns a monthly ledger and its terminal totals into a result with
// the yearly rollup and the summary message filled in.
func Aggregate(ledger []domain.MonthlyRecord, totalMonths int, finalAmount, totalInvested float64, required *float64, opts AggregateOptions) *domain.CalculationResult {
	if opts.Outcome == "" {
		opts.Outcome = domain.OutcomeReached
		if required != nil {
			opts.Outcome = domain.OutcomeSolved
		}
	}
	if !(opts.Target > 0) {
		opts.Target = DefaultTarget
	}
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = DefaultMaxMonths
	}

	return &domain.CalculationResult{
		Outcome:                     opts.Outcome,
		GoalReached:                 opts.Outcome.GoalReached(),
		Target:                      opts.Target,
		TotalMonths:                 totalMonths,
		FinalAmount:                 finalAmount,
		TotalInvested:               totalInvested,
		TotalInterest:               finalAmount - totalInvested,
		RequiredMonthlyContribution: required,
		MonthlyLedger:               ledger,
		YearlyLedger:                AggregateYears(ledger, totalMonths),
		SummaryMessage:              SummaryMessage(opts.Locale, opts.Outcome, opts.Target, totalMonths, opts.MaxMonths),
	}
}

// AggregateYears collapses the monthly ledger into one record per year bucket.
// Each year's deltas are taken against the closing record of the previous
// bucket. Year 0 is dropped unless the horizon is zero months.
func AggregateYears(ledger []domain.MonthlyRecord, totalMonths int) []domain.YearlyRecord {
	if len(ledger) == 0 {
		return []domain.YearlyRecord{}
	}

	// closing record per year, in encounter order
	closings := make([]domain.MonthlyRecord, 0, ledger[len(ledger)-1].YearIndex+1)
	for i, rec := range ledger {
		if i+1 == len(ledger) || ledger[i+1].YearIndex != rec.YearIndex {
			closings = append(closings, rec)
		}
	}

	years := make([]domain.YearlyRecord, 0, len(closings))
	var prev *domain.MonthlyRecord
	for i := range closings {
		last := closings[i]
		var investedBase, interestBase float64
		if prev != nil && prev.YearIndex == last.YearIndex-1 {
			investedBase = prev.CumulativeInvested
			interestBase = prev.CumulativeInterest
		}
		prev = &closings[i]

		if last.YearIndex == 0 && totalMonths != 0 {
			continue
		}
		years = append(years, domain.YearlyRecord{
			YearIndex:          last.YearIndex,
			InvestedThisYear:   last.CumulativeInvested - investedBase,
			InterestThisYear:   last.CumulativeInterest - interestBase,
			CumulativeInvested: last.CumulativeInvested,
			CumulativeInterest: last.CumulativeInterest,
			CumulativeTotal:    last.CumulativeTotal,
		})
	}
	return years
}

type messageSet struct {
	defaultTarget string
	customTarget  string
	contribution  string
	reached       string
	notReached    string
}

var summaryMessages = map[domain.Locale]messageSet{
	domain.LocaleEnglish: {
		defaultTarget: "1 million",
		customTarget:  "the target",
		contribution:  "To reach %s in %d years, the required monthly contribution is:",
		reached:       "You will reach %s in %d years and %d months!",
		notReached:    "You will not reach %s within %d years.",
	},
	domain.LocalePortuguese: {
		defaultTarget: "R$ 1 milhão",
		customTarget:  "a meta",
		contribution:  "Para atingir %s em %d anos, você precisa investir mensalmente:",
		reached:       "Você atingirá %s em %d anos e %d meses!",
		notReached:    "Você não atingirá %s em %d anos.",
	},
}

// SummaryMessage renders the one-line summary for an outcome. The solved
// contribution is never embedded; callers render the amount separately.
func SummaryMessage(locale domain.Locale, outcome domain.Outcome, target float64, totalMonths, maxMonths int) string {
	set := summaryMessages[locale.OrDefault()]
	label := set.customTarget
	if target == DefaultTarget {
		label = set.defaultTarget
	}

	years, months := totalMonths/12, totalMonths%12
	switch outcome {
	case domain.OutcomeSolved, domain.OutcomeAlreadyFunded:
		return fmt.Sprintf(set.contribution, label, years)
	case domain.OutcomeTargetNotReached:
		return fmt.Sprintf(set.notReached, label, maxMonths/12)
	default:
		return fmt.Sprintf(set.reached, label, years, months)
	}
}
