package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// Report is what every formatter renders: one projection and the locale to render it in
type Report struct {
	Name   string
	Result *domain.CalculationResult
	Locale domain.Locale
}

// NewReport wraps a result for rendering
func NewReport(name string, result *domain.CalculationResult, locale domain.Locale) *Report {
	return &Report{Name: name, Result: result, Locale: locale.OrDefault()}
}

// Labels returns the label set of the report's locale
func (r *Report) Labels() Labels {
	return LabelsFor(r.Locale)
}

// Formatter renders a report. Formatting has no side effects.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	Name() string
}

// FormatterFunc lets a plain function act as a Formatter
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// ExtensionFor maps a formatter name to the file extension its output should carry
func ExtensionFor(name string) string {
	switch NormalizeFormatName(name) {
	case "json":
		return "json"
	case "csv", "monthly-csv":
		return "csv"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// WriteFormatted runs a formatter and writes output to timestamped file with extension.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("projection_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	CSVYearlyFormatter{},
	CSVMonthlyFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"summary":     "console-lite",
	"lite":        "console-lite",
	"csv-yearly":  "csv",
	"yearly":      "csv",
	"csv-monthly": "monthly-csv",
	"monthly":     "monthly-csv",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
