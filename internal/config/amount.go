package config

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// ParseAmount reads a user typed amount in the conventions of locale. pt-BR
// groups with '.' and uses ',' as the decimal separator ("R$ 1.234,56");
// en-US groups with ',' and uses '.' ("$1,234.56"). Any other character is
// ignored and anything unparseable yields 0.
func ParseAmount(s string, locale domain.Locale) float64 {
	return ParseAmountDecimal(s, locale).InexactFloat64()
}

// ParseAmountDecimal is ParseAmount without the float conversion
func ParseAmountDecimal(s string, locale domain.Locale) decimal.Decimal {
	decimalSep := DecimalSeparator(locale)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == decimalSep:
			b.WriteByte('.')
		}
	}

	digits := strings.TrimSuffix(b.String(), ".")
	if digits == "" || digits == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalSeparator is the rune ParseAmount treats as the decimal point
func DecimalSeparator(locale domain.Locale) rune {
	if locale.OrDefault() == domain.LocalePortuguese {
		return ','
	}
	return '.'
}
