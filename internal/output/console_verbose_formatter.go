package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

const consoleRule = "================================================================================="

// ConsoleFormatter renders the full projection: inputs, headline, cards,
// composition and the yearly table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	var buf bytes.Buffer
	labels := report.Labels()
	result := report.Result
	locale := report.Locale

	fmt.Fprintln(&buf, consoleRule)
	fmt.Fprintln(&buf, labels.Title)
	if report.Name != "" {
		fmt.Fprintf(&buf, "%s\n", report.Name)
	}
	fmt.Fprintln(&buf, consoleRule)
	fmt.Fprintln(&buf)

	writeInputs(&buf, result.Request, result, labels, locale)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, result.SummaryMessage)
	fmt.Fprintf(&buf, "  %s\n", Headline(result, locale))
	fmt.Fprintln(&buf)

	b := NewBreakdown(result)
	status := labels.OutcomeLabel(result.Outcome)
	fmt.Fprintf(&buf, "%-22s %s  (%s)\n", labels.FinalAmount+":", FormatMoney(result.FinalAmount, locale), status)
	fmt.Fprintf(&buf, "%-22s %s\n", labels.TotalInvested+":", FormatMoney(result.TotalInvested, locale))
	fmt.Fprintf(&buf, "%-22s %s\n", labels.TotalInterest+":", FormatMoney(result.TotalInterest, locale))
	fmt.Fprintf(&buf, "%-22s %s\n", labels.Return+":", FormatPercentage(b.InterestShare, 1, locale))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, strings.ToUpper(labels.Composition))
	fmt.Fprintln(&buf, strings.Repeat("-", len([]rune(labels.Composition))))
	fmt.Fprintf(&buf, "[%s]\n", b.Bar(40))
	fmt.Fprintf(&buf, "█ %s %s   ░ %s %s\n",
		labels.InvestedShare, FormatPercentage(b.InvestedShare, 1, locale),
		labels.InterestShare, FormatPercentage(b.InterestShare, 1, locale))
	fmt.Fprintln(&buf)

	writeYearlyTable(&buf, result.YearlyLedger, labels, locale)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, labels.Disclaimer)

	return buf.Bytes(), nil
}

func writeInputs(buf *bytes.Buffer, req domain.CalculationRequest, result *domain.CalculationResult, labels Labels, locale domain.Locale) {
	fmt.Fprintf(buf, "%-22s %s\n", labels.Mode+":", labels.ModeLabel(req.Mode))
	fmt.Fprintf(buf, "%-22s %s\n", labels.InitialValue+":", FormatMoney(req.InitialValue, locale))
	if req.Mode == domain.ModeContributionForTerm {
		fmt.Fprintf(buf, "%-22s %d\n", labels.TargetYears+":", req.TargetYears)
	} else {
		fmt.Fprintf(buf, "%-22s %s\n", labels.MonthlyContribution+":", FormatMoney(req.MonthlyContribution, locale))
	}
	fmt.Fprintf(buf, "%-22s %s (%s %s)\n", labels.InterestRate+":",
		FormatRate(req.InterestRate, req.RatePeriod, locale),
		FormatPercentage(result.MonthlyRate*100, 4, locale), labels.PerMonth)
}

func writeYearlyTable(buf *bytes.Buffer, years []domain.YearlyRecord, labels Labels, locale domain.Locale) {
	fmt.Fprintln(buf, strings.ToUpper(labels.YearlyDetail))
	fmt.Fprintln(buf, consoleRule)
	fmt.Fprintf(buf, "%-5s %16s %16s %18s %18s %18s\n",
		labels.Year, labels.InvestedYear, labels.InterestYear, labels.TotalInvested, labels.TotalInterest, labels.CumulativeTotal)
	fmt.Fprintln(buf, strings.Repeat("-", 96))
	for _, y := range years {
		fmt.Fprintf(buf, "%-5d %16s %16s %18s %18s %18s\n",
			y.YearIndex,
			FormatMoney(y.InvestedThisYear, locale),
			FormatMoney(y.InterestThisYear, locale),
			FormatMoney(y.CumulativeInvested, locale),
			FormatMoney(y.CumulativeInterest, locale),
			FormatMoney(y.CumulativeTotal, locale))
	}
}

// ConsoleLiteFormatter prints the message, the headline and the three totals
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	var buf bytes.Buffer
	labels := report.Labels()
	result := report.Result
	fmt.Fprintln(&buf, result.SummaryMessage)
	fmt.Fprintln(&buf, Headline(result, report.Locale))
	fmt.Fprintf(&buf, "%s=%s %s=%s %s=%s\n",
		labels.FinalAmount, FormatMoney(result.FinalAmount, report.Locale),
		labels.TotalInvested, FormatMoney(result.TotalInvested, report.Locale),
		labels.TotalInterest, FormatMoney(result.TotalInterest, report.Locale))
	return buf.Bytes(), nil
}
