package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// debug_break_even prints the yearly ledgers of a plan side by side and the
// year in which the balance of the second scenario overtakes the first.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <plan-file>")
		return
	}
	p := config.NewInputParser()
	plan, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	cfg := calculation.DefaultEngineConfig()
	if plan.Target > 0 {
		cfg.Target = plan.Target
	}
	engine := calculation.NewCalculationEngineWithConfig(cfg)

	results := make([]*domain.CalculationResult, 0, len(plan.Scenarios))
	for _, s := range plan.Scenarios {
		res, err := engine.Compute(context.Background(), s.Request)
		if err != nil {
			panic(err)
		}
		results = append(results, res)
	}
	if len(results) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the shortest ledger across scenarios
	minLen := -1
	for _, r := range results {
		if minLen == -1 || len(r.YearlyLedger) < minLen {
			minLen = len(r.YearlyLedger)
		}
	}
	if minLen <= 0 {
		fmt.Println("no ledger data")
		return
	}

	// Header
	header := "Year"
	for i := range results {
		header += fmt.Sprintf(",S%d_Invested,S%d_Interest,S%d_Total", i+1, i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < minLen; idx++ {
		row := fmt.Sprintf("%d", results[0].YearlyLedger[idx].YearIndex)
		for _, r := range results {
			rec := r.YearlyLedger[idx]
			row += fmt.Sprintf(",%s,%s,%s",
				decimal.NewFromFloat(rec.CumulativeInvested).StringFixed(0),
				decimal.NewFromFloat(rec.CumulativeInterest).StringFixed(0),
				decimal.NewFromFloat(rec.CumulativeTotal).StringFixed(0),
			)
		}
		fmt.Println(row)
	}

	if len(results) >= 2 {
		a := results[0].YearlyLedger
		b := results[1].YearlyLedger
		if be := balanceCrossover(a, b); be != nil {
			fmt.Printf("\nCrossover Year: %d (totalA=%s totalB=%s diff=%s)\n",
				be.Year,
				be.TotalA.StringFixed(0),
				be.TotalB.StringFixed(0),
				be.Difference.StringFixed(0),
			)
		} else {
			fmt.Println("\nNo crossover found within the shorter ledger")
		}
	}
}

type crossover struct {
	Year       int
	TotalA     decimal.Decimal
	TotalB     decimal.Decimal
	Difference decimal.Decimal
}

// balanceCrossover returns the first year in which the sign of totalA-totalB flips
func balanceCrossover(a, b []domain.YearlyRecord) *crossover {
	length := min(len(a), len(b))
	if length == 0 {
		return nil
	}

	prevDiff := decimal.Zero
	for i := 0; i < length; i++ {
		totalA := decimal.NewFromFloat(a[i].CumulativeTotal)
		totalB := decimal.NewFromFloat(b[i].CumulativeTotal)
		diff := totalA.Sub(totalB)
		if i == 0 {
			prevDiff = diff
			if diff.IsZero() {
				return &crossover{Year: a[i].YearIndex, TotalA: totalA, TotalB: totalB, Difference: diff}
			}
			continue
		}

		if diff.IsZero() || diff.Sign() != prevDiff.Sign() {
			return &crossover{Year: a[i].YearIndex, TotalA: totalA, TotalB: totalB, Difference: diff}
		}
		prevDiff = diff
	}

	return nil
}
