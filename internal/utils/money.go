package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of fractional digits kept for every stored amount.
const MoneyPrecision = 2

// RoundMoney rounds half away from zero to two decimal places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// ClampNonNegative returns zero for negative amounts.
func ClampNonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// FormatMoney renders an amount with two decimals and thousands separators.
// Example: 1234567.891 returns "1,234,567.89"
func FormatMoney(amount decimal.Decimal) string {
	fixed := amount.StringFixed(MoneyPrecision)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
