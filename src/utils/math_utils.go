package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// SanitizeNumeric strips everything but digits, sign and decimal point so
// values like "$1,234.56" or " 0.5 BTC" survive parsing.
func SanitizeNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDecimal parses an exchange-formatted numeric string. Empty or
// blank-after-sanitizing input parses as zero.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := SanitizeNumeric(s)
	if clean == "" || clean == "-" || clean == "+" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable number %q: %w", s, err)
	}
	return d, nil
}

// SplitAmountCurrency splits a value whose currency is appended as a
// suffix, e.g. Binance's "1116.22401PLN" -> ("1116.22401", "PLN").
// A value with no letter suffix comes back with an empty currency.
func SplitAmountCurrency(s string) (amount, currency string) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && unicode.IsLetter(rune(s[i-1])) {
		i--
	}
	return strings.TrimSpace(s[:i]), strings.ToUpper(s[i:])
}
