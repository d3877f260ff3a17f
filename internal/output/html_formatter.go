package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with cards, an area chart and the yearly table.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": FormatMoney,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

const (
	chartWidth   = 720.0
	chartHeight  = 300.0
	chartPadLeft = 60.0
	chartPadBot  = 30.0
	chartTicks   = 5
)

type chartTick struct {
	Pos   float64
	Label string
}

// areaChart is the pre-computed SVG geometry of the wealth chart
type areaChart struct {
	Width, Height float64
	Left, Bottom  float64
	TotalPath     string
	InvestedPath  string
	YTicks        []chartTick
	XTicks        []chartTick
}

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	var buf bytes.Buffer
	data := struct {
		*Report
		L         Labels
		Headline  string
		Breakdown Breakdown
		Chart     areaChart
	}{report, report.Labels(), Headline(report.Result, report.Locale), NewBreakdown(report.Result), buildAreaChart(report.Result.YearlyLedger, report.Locale)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildAreaChart(years []domain.YearlyRecord, locale domain.Locale) areaChart {
	chart := areaChart{Width: chartWidth, Height: chartHeight, Left: chartPadLeft, Bottom: chartHeight - chartPadBot}
	if len(years) == 0 {
		return chart
	}
	labels := LabelsFor(locale)

	maxValue := 0.0
	for _, y := range years {
		if y.CumulativeTotal > maxValue {
			maxValue = y.CumulativeTotal
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}
	plotW := chartWidth - chartPadLeft - 10
	plotH := chart.Bottom - 10

	xFor := func(i int) float64 {
		if len(years) == 1 {
			return chartPadLeft + plotW/2
		}
		return chartPadLeft + plotW*float64(i)/float64(len(years)-1)
	}
	yFor := func(v float64) float64 {
		return chart.Bottom - plotH*v/maxValue
	}

	chart.TotalPath = areaPath(years, xFor, yFor, func(y domain.YearlyRecord) float64 { return y.CumulativeTotal }, chart.Bottom)
	chart.InvestedPath = areaPath(years, xFor, yFor, func(y domain.YearlyRecord) float64 { return y.CumulativeInvested }, chart.Bottom)

	for i := 0; i <= chartTicks; i++ {
		v := maxValue * float64(i) / chartTicks
		chart.YTicks = append(chart.YTicks, chartTick{Pos: yFor(v), Label: FormatCompact(v, locale)})
	}
	stride := len(years)/8 + 1
	for i, y := range years {
		if i%stride == 0 || i == len(years)-1 {
			chart.XTicks = append(chart.XTicks, chartTick{Pos: xFor(i), Label: fmt.Sprintf(labels.YearTick, y.YearIndex)})
		}
	}
	return chart
}

func areaPath(years []domain.YearlyRecord, xFor func(int) float64, yFor func(float64) float64, value func(domain.YearlyRecord) float64, bottom float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M%.1f,%.1f", xFor(0), bottom)
	for i, y := range years {
		fmt.Fprintf(&b, " L%.1f,%.1f", xFor(i), yFor(value(y)))
	}
	fmt.Fprintf(&b, " L%.1f,%.1f Z", xFor(len(years)-1), bottom)
	return b.String()
}
