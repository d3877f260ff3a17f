package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReportGenerator writes formatted projections to a destination
type ReportGenerator struct {
	out io.Writer
}

// NewReportGenerator creates a report generator writing to out, or stdout when out is nil
func NewReportGenerator(out io.Writer) *ReportGenerator {
	if out == nil {
		out = os.Stdout
	}
	return &ReportGenerator{out: out}
}

// GenerateReport renders report with the named formatter and writes it to w
func GenerateReport(w io.Writer, report *Report, format string) error {
	return NewReportGenerator(w).Generate(report, format)
}

// Generate renders report in the given format
func (rg *ReportGenerator) Generate(report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s; aliases: %s)", format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = rg.out.Write(data)
	return err
}

// SaveReport renders report into filename; an empty filename gets a timestamped name
func SaveReport(report *Report, format, filename string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if filename == "" {
		return WriteFormatted(f, report, ExtensionFor(f.Name()))
	}
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveSummary writes the headline numbers of a report as YAML
func SaveSummary(report *Report, filename string) error {
	result := report.Result
	summary := map[string]interface{}{
		"outcome":        string(result.Outcome),
		"total_months":   result.TotalMonths,
		"final_amount":   fixed(result.FinalAmount),
		"total_invested": fixed(result.TotalInvested),
		"total_interest": fixed(result.TotalInterest),
		"message":        result.SummaryMessage,
	}
	if c, ok := result.RequiredContribution(); ok {
		summary["required_monthly_contribution"] = fixed(c)
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
