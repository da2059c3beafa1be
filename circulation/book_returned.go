package circulation

import (
	"time"
)

// BookReturnedEventType is the audit event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned records that a member returned a borrowed book,
// including the fine amount finalized at the moment of return.
type BookReturned struct {
	BorrowID   string
	BookID     string
	MemberID   string
	FineAmount string
	OccurredAt OccurredAtTS
}

// BuildBookReturned creates a new BookReturned audit event from a returned borrow.
func BuildBookReturned(borrow Borrow, occurredAt time.Time) BookReturned {
	return BookReturned{
		BorrowID:   borrow.ID.String(),
		BookID:     borrow.BookID.String(),
		MemberID:   borrow.MemberID.String(),
		FineAmount: borrow.FineAmount.StringFixed(2),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the audit event type identifier.
func (e BookReturned) EventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
