package output

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// JSONFormatter serializes the projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	doc := struct {
		Name   string        `json:"name,omitempty"`
		Locale domain.Locale `json:"locale"`
		*domain.CalculationResult
		Breakdown Breakdown `json:"breakdown"`
	}{report.Name, report.Locale, report.Result, NewBreakdown(report.Result)}
	return json.MarshalIndent(doc, "", "  ")
}
