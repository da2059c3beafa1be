package circulation

import (
	"github.com/shopspring/decimal"
)

// Amounts are exact decimals with 2 fractional digits, never floating point,
// so repeated fine arithmetic cannot accumulate rounding drift.

// FinePerDay is the fine accrued per full day a borrow is overdue.
var FinePerDay = decimal.RequireFromString("2.00")

// ZeroAmount is the canonical zero for fine and payment amounts.
var ZeroAmount = decimal.Zero.Round(2)

// IsPositiveAmount reports whether an amount is strictly greater than zero.
func IsPositiveAmount(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
