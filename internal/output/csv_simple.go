package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
)

// CSVYearlyFormatter exports the yearly ledger, one row per retained year.
type CSVYearlyFormatter struct{}

func (c CSVYearlyFormatter) Name() string { return "csv" }

func (c CSVYearlyFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "InvestedThisYear", "InterestThisYear", "CumulativeInvested", "CumulativeInterest", "CumulativeTotal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range report.Result.YearlyLedger {
		row := []string{
			intToString(y.YearIndex),
			fixed(y.InvestedThisYear),
			fixed(y.InterestThisYear),
			fixed(y.CumulativeInvested),
			fixed(y.CumulativeInterest),
			fixed(y.CumulativeTotal),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVMonthlyFormatter exports every month of the ledger including the opening month 0.
type CSVMonthlyFormatter struct{}

func (c CSVMonthlyFormatter) Name() string { return "monthly-csv" }

func (c CSVMonthlyFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Year", "CumulativeInvested", "CumulativeInterest", "CumulativeTotal"}); err != nil {
		return nil, err
	}
	for _, m := range report.Result.MonthlyLedger {
		row := []string{
			intToString(m.MonthIndex),
			intToString(m.YearIndex),
			fixed(m.CumulativeInvested),
			fixed(m.CumulativeInterest),
			fixed(m.CumulativeTotal),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
