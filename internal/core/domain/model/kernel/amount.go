package kernel

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places kept for weights and monetary amounts.
const AmountScale = 3

// RoundAmount rounds d to AmountScale places, half away from zero.
//
// Example:
//
//	kernel.RoundAmount(decimal.RequireFromString("8.2495")) // 8.250
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// FormatAmount renders d with exactly AmountScale decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
