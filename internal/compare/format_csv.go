package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Mode",
		"Outcome",
		"Total Months",
		"Monthly Effort",
		"Final Amount",
		"Total Invested",
		"Total Interest",
		"Months Diff from Base",
		"Effort Diff from Base",
		"Interest Diff from Base",
		"Interest % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Mode),
		string(result.Outcome),
		formatInt(result.TotalMonths),
		result.MonthlyEffort.StringFixed(2),
		result.FinalAmount.StringFixed(2),
		result.TotalInvested.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		formatInt(result.MonthsDiffFromBase),
		result.EffortDiffFromBase.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
		result.InterestPctFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
