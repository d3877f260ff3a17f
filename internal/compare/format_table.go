package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder
	locale := compSet.Locale

	sb.WriteString("FIRST MILLION SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	if compSet.PlanName != "" {
		sb.WriteString(fmt.Sprintf("Plan: %s\n", compSet.PlanName))
	}
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Time",
		numWidth, "Monthly",
		numWidth, "Final Amount",
		numWidth, "Interest"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true, locale))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false, locale))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			if alt.MonthsDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Time:             %+d months\n", alt.MonthsDiffFromBase))
			}

			if !alt.EffortDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Monthly Effort:   %s%s\n",
					tf.deltaSymbol(alt.EffortDiffFromBase),
					output.FormatCurrency(alt.EffortDiffFromBase, locale)))
			}

			sb.WriteString(fmt.Sprintf("  Interest Earned:  %s%s (%s%%)\n",
				tf.deltaSymbol(alt.InterestDiffFromBase),
				output.FormatCurrency(alt.InterestDiffFromBase, locale),
				alt.InterestPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool, locale domain.Locale) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatTime(result),
		numWidth, tf.formatCompact(result.MonthlyEffort, locale),
		numWidth, tf.formatCompact(result.FinalAmount, locale),
		numWidth, tf.formatCompact(result.TotalInterest, locale))
}

// formatTime renders the horizon as years and months, or "not reached"
func (tf *TableFormatter) formatTime(result *ComparisonResult) string {
	if result.Outcome == domain.OutcomeTargetNotReached {
		return "not reached"
	}
	return fmt.Sprintf("%dy %dm", result.TotalMonths/12, result.TotalMonths%12)
}

// formatCompact formats money for a narrow column
func (tf *TableFormatter) formatCompact(d decimal.Decimal, locale domain.Locale) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return output.FormatCompact(d.InexactFloat64(), locale)
	}
	return output.FormatCurrency(d, locale)
}

// deltaSymbol returns a + prefix for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthsDiffFromBase != 0 {
			change = fmt.Sprintf("%+dm", alt.MonthsDiffFromBase)
		} else if !alt.EffortDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.EffortDiffFromBase) + output.FormatCurrency(alt.EffortDiffFromBase, compSet.Locale) + "/mo"
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
