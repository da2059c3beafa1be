package circulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// The fine engine: pure functions deriving overdue status and fine amounts
// from a borrow's stored state and an explicit reference time. Safe to call
// repeatedly; no side effects.

// IsOverdue reports whether the borrow is overdue as of the given time.
// A returned borrow is never overdue.
func IsOverdue(borrow Borrow, asOf time.Time) bool {
	if borrow.Status == BorrowStatusReturned {
		return false
	}

	return ToDate(asOf).After(borrow.DueDate)
}

// DaysOverdue returns the number of full days the borrow is overdue as of the
// given time, clamped to 0 when not overdue.
func DaysOverdue(borrow Borrow, asOf time.Time) int {
	if !IsOverdue(borrow, asOf) {
		return 0
	}

	return int(ToDate(asOf).Sub(borrow.DueDate).Hours() / 24)
}

// AccruedFine returns the fine accrued by the borrow as of the given time:
// days overdue times FinePerDay, as an exact 2-decimal amount.
func AccruedFine(borrow Borrow, asOf time.Time) decimal.Decimal {
	days := DaysOverdue(borrow, asOf)
	if days == 0 {
		return ZeroAmount
	}

	return FinePerDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}
