package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct {
	Locale domain.Locale
}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder
	locale := tf.Locale.OrDefault()
	req := result.Request.Base

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Search Target:       %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Horizon:             %d years\n", result.Request.Constraints.HorizonYears))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalRate != nil {
		sb.WriteString(fmt.Sprintf("Interest Rate:        %s (%+.4f points)\n",
			output.FormatRate(*result.OptimalRate, req.RatePeriod, locale), result.DiffFromBase.InexactFloat64()))
	}
	if result.OptimalInitialValue != nil {
		sb.WriteString(fmt.Sprintf("Initial Value:        %s (%s%s)\n",
			output.FormatCurrency(*result.OptimalInitialValue, locale), tf.deltaSymbol(result.DiffFromBase), output.FormatCurrency(result.DiffFromBase, locale)))
	}
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("Monthly Contribution: %s (%s%s)\n",
			output.FormatCurrency(*result.OptimalContribution, locale), tf.deltaSymbol(result.DiffFromBase), output.FormatCurrency(result.DiffFromBase, locale)))
	}
	sb.WriteString("\n")

	if r := result.Result; r != nil {
		sb.WriteString("PROJECTED RESULTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Time to Target:  %s\n", output.Headline(r, locale)))
		sb.WriteString(fmt.Sprintf("Final Amount:    %s\n", output.FormatMoney(r.FinalAmount, locale)))
		sb.WriteString(fmt.Sprintf("Total Invested:  %s\n", output.FormatMoney(r.TotalInvested, locale)))
		sb.WriteString(fmt.Sprintf("Total Interest:  %s\n", output.FormatMoney(r.TotalInterest, locale)))
		sb.WriteString("\n")
	}

	if base := result.BaseResult; base != nil {
		sb.WriteString("CURRENT PLAN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Within Horizon:  %s\n", tf.formatStatus(base.GoalReached)))
		sb.WriteString(fmt.Sprintf("Balance:         %s after %d months\n", output.FormatMoney(base.FinalAmount, locale), base.TotalMonths))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder
	locale := tf.Locale.OrDefault()

	sb.WriteString("BREAK-EVEN ANALYSIS: ALL TARGETS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-16s %22s %16s %10s %12s\n",
		"Target", "Break-even Value", "Change", "Months", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		value, change := tf.formatValue(&res, locale)
		sb.WriteString(fmt.Sprintf("%-16s %22s %16s %10d %12s\n",
			tf.truncate(string(res.Request.Target), 16),
			value,
			change,
			res.Result.TotalMonths,
			tf.formatStatus(res.Success)))
	}
	for target, reason := range result.Failures {
		sb.WriteString(fmt.Sprintf("%-16s %s\n", tf.truncate(string(target), 16), reason))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatValue(res *OptimizationResult, locale domain.Locale) (string, string) {
	if res.OptimalRate != nil {
		return output.FormatRate(*res.OptimalRate, res.Request.Base.RatePeriod, locale),
			fmt.Sprintf("%+.2f pts", res.DiffFromBase.InexactFloat64())
	}
	return output.FormatCurrency(res.Value(), locale),
		tf.deltaSymbol(res.DiffFromBase) + output.FormatCompact(res.DiffFromBase.InexactFloat64(), locale)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
