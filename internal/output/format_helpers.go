package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/shopspring/decimal"
)

type numberFormat struct {
	currency string
	prefix   string // between symbol and digits
	group    string
	decimal  string
}

var numberFormats = map[domain.Locale]numberFormat{
	domain.LocaleEnglish:    {currency: "$", group: ",", decimal: "."},
	domain.LocalePortuguese: {currency: "R$", prefix: " ", group: ".", decimal: ","},
}

func formatFor(locale domain.Locale) numberFormat {
	return numberFormats[locale.OrDefault()]
}

// FormatCurrency formats a decimal as money in the locale's style, rounded to
// cents: "$1,234.56" or "R$ 1.234,56".
func FormatCurrency(amount decimal.Decimal, locale domain.Locale) string {
	nf := formatFor(locale)
	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + nf.currency + nf.prefix + formatNumber(amount, 2, nf)
}

// FormatMoney is FormatCurrency for float amounts
func FormatMoney(amount float64, locale domain.Locale) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	return FormatCurrency(decimal.NewFromFloat(amount), locale)
}

// FormatNumber formats a plain number with the locale's separators
func FormatNumber(value float64, places int32, locale domain.Locale) string {
	d := decimal.NewFromFloat(value)
	sign := ""
	if d.Round(places).IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + formatNumber(d, places, formatFor(locale))
}

// FormatPercentage formats a percentage value such as 10 as "10.00%"
func FormatPercentage(pct float64, places int32, locale domain.Locale) string {
	return FormatNumber(pct, places, locale) + "%"
}

// FormatRate renders a request's rate with its period, e.g. "10% a.a." or "1.5% per month"
func FormatRate(rate float64, period domain.RatePeriod, locale domain.Locale) string {
	labels := LabelsFor(locale)
	suffix := labels.PerYear
	if period == domain.PeriodMonthly {
		suffix = labels.PerMonth
	}
	text := strings.TrimRight(strings.TrimRight(FormatNumber(rate, 4, locale), "0"), formatFor(locale).decimal)
	return text + "% " + suffix
}

// FormatCompact renders chart axis values: 1.2M, 350k or the plain integer
func FormatCompact(value float64, locale domain.Locale) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000:
		return FormatNumber(value/1_000_000, 1, locale) + "M"
	case abs >= 1_000:
		return FormatNumber(value/1_000, 0, locale) + "k"
	default:
		return FormatNumber(value, 0, locale)
	}
}

func formatNumber(d decimal.Decimal, places int32, nf numberFormat) string {
	fixed := d.StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(nf.group)
		}
		b.WriteRune(r)
	}
	if places > 0 {
		b.WriteString(nf.decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

func intToString(v int) string {
	return fmt.Sprintf("%d", v)
}
