package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FineStatus represents the settlement state of a fine.
type FineStatus string

const (
	FineStatusPending FineStatus = "pending"
	FineStatusPaid    FineStatus = "paid"
	FineStatusWaived  FineStatus = "waived"
)

// FineReasonLateReturn is the reason recorded on fines issued for late returns.
const FineReasonLateReturn = "Late return"

// fineDueDays is the payment window granted when a fine is issued.
const fineDueDays = 7

// Fine is a monetary penalty linked to a late borrow. A borrow accumulates at
// most one late-return fine; re-issuing is not part of this design.
type Fine struct {
	ID            uuid.UUID
	BorrowID      uuid.UUID
	Amount        decimal.Decimal
	Reason        string
	IssueDate     time.Time
	DueDate       time.Time
	Status        FineStatus
	PaymentDate   *time.Time
	PaymentMethod string
}

// WithPayment marks the fine as settled by a payment. Only pending fines can
// be settled; anything else reports ErrInvariantViolation.
func (f Fine) WithPayment(paidAt time.Time, method string) (Fine, error) {
	if f.Status != FineStatusPending {
		return Fine{}, ErrInvariantViolation
	}

	paymentDate := ToOccurredAt(paidAt)

	updated := f
	updated.Status = FineStatusPaid
	updated.PaymentDate = &paymentDate
	updated.PaymentMethod = method

	return updated, nil
}

// BuildLateReturnFine creates a pending late-return Fine due seven days after issue.
func BuildLateReturnFine(id uuid.UUID, borrowID uuid.UUID, amount decimal.Decimal, occurredAt time.Time) Fine {
	return Fine{
		ID:        id,
		BorrowID:  borrowID,
		Amount:    amount.Round(2),
		Reason:    FineReasonLateReturn,
		IssueDate: ToOccurredAt(occurredAt),
		DueDate:   ToDate(occurredAt).AddDate(0, 0, fineDueDays),
		Status:    FineStatusPending,
	}
}
