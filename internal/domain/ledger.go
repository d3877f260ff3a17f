package domain

// MonthlyRecord is one snapshot of the account at the end of a month.
// Month 0 is the opening balance before any growth is applied.
type MonthlyRecord struct {
	MonthIndex         int     `json:"monthIndex"`
	YearIndex          int     `json:"yearIndex"`
	CumulativeInvested float64 `json:"cumulativeInvested"`
	CumulativeInterest float64 `json:"cumulativeInterest"`
	CumulativeTotal    float64 `json:"cumulativeTotal"`
}

// NewMonthlyRecord builds a record from the running totals, deriving the year
// bucket and the accumulated interest.
func NewMonthlyRecord(month int, invested, total float64) MonthlyRecord {
	return MonthlyRecord{
		MonthIndex:         month,
		YearIndex:          month / 12,
		CumulativeInvested: invested,
		CumulativeInterest: total - invested,
		CumulativeTotal:    total,
	}
}

// YearlyRecord summarises one year bucket of the monthly ledger
type YearlyRecord struct {
	YearIndex          int     `json:"yearIndex"`
	InvestedThisYear   float64 `json:"investedThisYear"`
	InterestThisYear   float64 `json:"interestThisYear"`
	CumulativeInvested float64 `json:"cumulativeInvested"`
	CumulativeInterest float64 `json:"cumulativeInterest"`
	CumulativeTotal    float64 `json:"cumulativeTotal"`
}
