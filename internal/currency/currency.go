// Package currency holds the set of supported display currencies and money
// formatting helpers.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is the display currency used when no supported preference exists.
const Default = "USD"

// Supported lists the display currencies a portfolio may be reported in.
var Supported = []string{"USD", "EUR", "CNY"}

// IsSupported reports whether code is a supported display currency.
func IsSupported(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

// ResolveDisplay maps any input to a supported display currency, falling
// back to Default for unknown or empty codes.
func ResolveDisplay(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if IsSupported(code) {
		return code
	}
	return Default
}

// IsISO4217 reports whether code is a currency known to go-money.
func IsISO4217(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// Format renders amount in code with the currency's symbol and grouping,
// e.g. "$1,234.56". Unknown codes fall back to "<amount> <code>".
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
