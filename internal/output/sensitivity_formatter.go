package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// SensitivityFormatter defines a formatter for rate sweeps
type SensitivityFormatter interface {
	FormatSensitivity(sweep *domain.RateSensitivity, locale domain.Locale) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats a rate sweep as a console table
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivity(sweep *domain.RateSensitivity, locale domain.Locale) (string, error) {
	if sweep == nil || len(sweep.Points) == 0 {
		return "", fmt.Errorf("no points in sensitivity sweep")
	}
	var buf bytes.Buffer
	labels := LabelsFor(locale)
	req := sweep.BaseRequest
	contributionMode := req.Mode == domain.ModeContributionForTerm

	fmt.Fprintf(&buf, "%s: %s\n", labels.Sensitivity, labels.ModeLabel(req.Mode))
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintf(&buf, "Base Case: %s\n", FormatRate(req.InterestRate, req.RatePeriod, locale))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		FormatRate(sweep.MinRate, req.RatePeriod, locale),
		FormatRate(sweep.MaxRate, req.RatePeriod, locale),
		sweep.Steps)
	fmt.Fprintln(&buf)

	if contributionMode {
		fmt.Fprintf(&buf, "%-20s %-22s %-18s %-18s %-18s\n",
			labels.InterestRate, labels.RequiredContribution, labels.Delta, labels.TotalInterest, labels.Delta)
	} else {
		fmt.Fprintf(&buf, "%-20s %-10s %-8s %-18s %-18s %-18s\n",
			labels.InterestRate, labels.Months, labels.Delta, labels.TimeToTarget, labels.TotalInterest, labels.Delta)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 100))

	for _, p := range sweep.Points {
		rateStr := FormatRate(p.InterestRate, req.RatePeriod, locale)
		if p.IsBase {
			rateStr += " ← " + labels.Base
		}
		if contributionMode {
			contribution := 0.0
			if p.RequiredMonthlyContribution != nil {
				contribution = *p.RequiredMonthlyContribution
			}
			fmt.Fprintf(&buf, "%-20s %-22s %-18s %-18s %-18s\n",
				rateStr,
				FormatMoney(contribution, locale),
				signedMoney(p.ContributionDelta, locale),
				FormatMoney(p.TotalInterest, locale),
				signedMoney(p.InterestDelta, locale))
			continue
		}
		horizon := fmt.Sprintf(labels.YearsAndMonths, p.TotalMonths/12, p.TotalMonths%12)
		if p.Outcome == domain.OutcomeTargetNotReached {
			horizon = labels.TargetNotReached
		}
		fmt.Fprintf(&buf, "%-20s %-10d %-8s %-18s %-18s %-18s\n",
			rateStr,
			p.TotalMonths,
			fmt.Sprintf("%+d", p.MonthsDelta),
			horizon,
			FormatMoney(p.TotalInterest, locale),
			signedMoney(p.InterestDelta, locale))
	}
	return buf.String(), nil
}

func signedMoney(v float64, locale domain.Locale) string {
	if v > 0 {
		return "+" + FormatMoney(v, locale)
	}
	return FormatMoney(v, locale)
}

// SensitivityCSVFormatter formats a rate sweep as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivity(sweep *domain.RateSensitivity, _ domain.Locale) (string, error) {
	if sweep == nil {
		return "", fmt.Errorf("no sensitivity sweep to format")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"InterestRate", "MonthlyRate", "IsBase", "Outcome", "TotalMonths", "FinalAmount", "TotalInvested", "TotalInterest", "RequiredMonthlyContribution", "MonthsDelta", "ContributionDelta", "InterestDelta"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, p := range sweep.Points {
		contribution := ""
		if p.RequiredMonthlyContribution != nil {
			contribution = fixed(*p.RequiredMonthlyContribution)
		}
		row := []string{
			strconv.FormatFloat(p.InterestRate, 'f', -1, 64),
			strconv.FormatFloat(p.MonthlyRate, 'f', 10, 64),
			strconv.FormatBool(p.IsBase),
			string(p.Outcome),
			intToString(p.TotalMonths),
			fixed(p.FinalAmount),
			fixed(p.TotalInvested),
			fixed(p.TotalInterest),
			contribution,
			intToString(p.MonthsDelta),
			fixed(p.ContributionDelta),
			fixed(p.InterestDelta),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter formats a rate sweep as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivity(sweep *domain.RateSensitivity, _ domain.Locale) (string, error) {
	if sweep == nil {
		return "", fmt.Errorf("no sensitivity sweep to format")
	}
	data, err := json.MarshalIndent(sweep, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "console-lite":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
