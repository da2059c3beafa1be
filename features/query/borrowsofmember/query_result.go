package borrowsofmember

import (
	"time"
)

// BorrowView is one borrow transaction enriched with the derived overdue
// state. Overdue is a read-only view computed against the query's reference
// time; the stored status stays active until an explicit return.
type BorrowView struct {
	BorrowID    string
	BookID      string
	BorrowDate  time.Time
	DueDate     time.Time
	ReturnDate  *time.Time
	Status      string
	FineAmount  string
	IsOverdue   bool
	DaysOverdue int
	AccruedFine string
}

// Result is the read model listing all borrow transactions of one member,
// newest first.
type Result struct {
	MemberID string
	Borrows  []BorrowView
}
