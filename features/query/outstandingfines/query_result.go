package outstandingfines

import (
	"time"
)

// FineView is one pending fine in the read model.
type FineView struct {
	FineID    string
	BorrowID  string
	Amount    string
	Reason    string
	IssueDate time.Time
	DueDate   time.Time
}

// Result is the read model listing the pending fines of one member, oldest
// first, with their exact decimal total.
type Result struct {
	MemberID string
	Fines    []FineView
	Total    string
}
