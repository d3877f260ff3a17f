package domain

import (
	"fmt"
	"strings"
)

// Locale selects message language and currency formatting for presentation
type Locale string

const (
	LocaleEnglish    Locale = "en-US"
	LocalePortuguese Locale = "pt-BR"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = LocaleEnglish

// ParseLocale resolves a locale tag such as "pt_BR", "pt" or "en"
func ParseLocale(s string) (Locale, error) {
	tag := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	switch tag {
	case "", "en", "en-us":
		return LocaleEnglish, nil
	case "pt", "pt-br":
		return LocalePortuguese, nil
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}

// OrDefault returns DefaultLocale for an unset or unknown locale
func (l Locale) OrDefault() Locale {
	if l == LocaleEnglish || l == LocalePortuguese {
		return l
	}
	return DefaultLocale
}
