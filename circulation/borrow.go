package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BorrowStatus represents the lifecycle state of a borrow transaction.
type BorrowStatus string

const (
	BorrowStatusActive   BorrowStatus = "active"
	BorrowStatusReturned BorrowStatus = "returned"
	BorrowStatusLost     BorrowStatus = "lost"
)

// BorrowPeriodDays is the loan period; the due date is the borrow date plus this many days.
const BorrowPeriodDays = 14

// Borrow records that a member holds a copy of a book until a due date.
//
// Lifecycle: created active; transitions to returned exactly once, at which
// point FineAmount is finalized and never changes again. Overdue is a derived
// view (see overdue.go), not a stored state: Status stays active until an
// explicit return. Lost is terminal and reached by an administrative action.
type Borrow struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     BorrowStatus
	FineAmount decimal.Decimal
}

// BuildBorrow creates an active Borrow with the due date derived from the borrow date.
func BuildBorrow(id uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Borrow {
	return Borrow{
		ID:         id,
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: ToOccurredAt(occurredAt),
		DueDate:    ToDate(occurredAt).AddDate(0, 0, BorrowPeriodDays),
		Status:     BorrowStatusActive,
		FineAmount: ZeroAmount,
	}
}

// WithReturn returns the borrow in its terminal returned state with the fine
// amount finalized. Returns ErrAlreadyReturned if it was already returned.
func (b Borrow) WithReturn(returnedAt time.Time, fineAmount decimal.Decimal) (Borrow, error) {
	if b.Status == BorrowStatusReturned {
		return Borrow{}, ErrAlreadyReturned
	}

	returnDate := ToOccurredAt(returnedAt)
	b.ReturnDate = &returnDate
	b.Status = BorrowStatusReturned
	b.FineAmount = fineAmount

	return b, nil
}
