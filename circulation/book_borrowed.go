package circulation

import (
	"time"
)

// BookBorrowedEventType is the audit event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed records that a member borrowed a copy of a book.
type BookBorrowed struct {
	BorrowID   string
	BookID     string
	MemberID   string
	DueDate    string
	OccurredAt OccurredAtTS
}

// BuildBookBorrowed creates a new BookBorrowed audit event from a borrow transaction.
func BuildBookBorrowed(borrow Borrow) BookBorrowed {
	return BookBorrowed{
		BorrowID:   borrow.ID.String(),
		BookID:     borrow.BookID.String(),
		MemberID:   borrow.MemberID.String(),
		DueDate:    borrow.DueDate.Format(time.DateOnly),
		OccurredAt: borrow.BorrowDate,
	}
}

// EventType returns the audit event type identifier.
func (e BookBorrowed) EventType() string {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
