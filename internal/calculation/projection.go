package calculation

import (
	"math"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// projection holds the running state and ledger of one accumulation run
type projection struct {
	ledger   []domain.MonthlyRecord
	month    int
	total    float64
	invested float64
}

func newProjection(initial float64, capacity int) *projection {
	p := &projection{
		ledger:   make([]domain.MonthlyRecord, 0, capacity+1),
		total:    initial,
		invested: initial,
	}
	p.ledger = append(p.ledger, domain.NewMonthlyRecord(0, initial, initial))
	return p
}

// step advances one month. Interest accrues on the balance before this
// month's contribution, so the contribution earns nothing until next month.
func (p *projection) step(monthlyRate, contribution float64) {
	p.month++
	interest := p.total * monthlyRate
	p.total += interest + contribution
	p.invested += contribution
	p.ledger = append(p.ledger, domain.NewMonthlyRecord(p.month, p.invested, p.total))
}

// projectUntilTarget runs months until the balance reaches target or maxMonths
// have elapsed, whichever comes first.
func projectUntilTarget(initial, contribution, monthlyRate, target float64, maxMonths int) *projection {
	p := newProjection(initial, estimateMonths(initial, contribution, monthlyRate, target, maxMonths))
	for p.total < target && p.month < maxMonths {
		p.step(monthlyRate, contribution)
	}
	return p
}

// projectFixedTerm runs exactly months months
func projectFixedTerm(initial, contribution, monthlyRate float64, months int) *projection {
	p := newProjection(initial, months)
	for p.month < months {
		p.step(monthlyRate, contribution)
	}
	return p
}

// SolveMonthlyContribution returns the constant end-of-month contribution that
// grows initial to target over months at monthlyRate. The second return value
// is true when the initial value alone already reaches the target, in which
// case the contribution is 0.
func SolveMonthlyContribution(initial, monthlyRate, target float64, months int) (float64, bool) {
	if months <= 0 {
		return 0, initial >= target
	}
	growth := math.Pow(1+monthlyRate, float64(months))
	if math.IsInf(growth, 1) {
		// the annuity factor is unbounded, so the required contribution tends to 0
		return 0, initial > 0
	}
	remaining := target - initial*growth
	if remaining <= 0 {
		return 0, true
	}
	if monthlyRate == 0 {
		return remaining / float64(months), false
	}
	annuityFactor := (growth - 1) / monthlyRate
	return remaining / annuityFactor, false
}

// estimateMonths sizes the ledger allocation for an open-ended run
func estimateMonths(initial, contribution, monthlyRate, target float64, maxMonths int) int {
	if initial >= target {
		return 0
	}
	if contribution <= 0 && (monthlyRate <= 0 || initial <= 0) {
		return maxMonths
	}
	if monthlyRate == 0 {
		return clampMonths(int(math.Ceil((target-initial)/contribution)), maxMonths)
	}
	// Closed form of the loop: B(n) = (P + c/r)(1+r)^n - c/r
	k := contribution / monthlyRate
	n := math.Log((target+k)/(initial+k)) / math.Log1p(monthlyRate)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return maxMonths
	}
	return clampMonths(int(math.Ceil(n)), maxMonths)
}

func clampMonths(n, maxMonths int) int {
	if n < 0 {
		return 0
	}
	if n > maxMonths {
		return maxMonths
	}
	return n
}
