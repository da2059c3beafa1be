package circulation

import (
	"time"
)

// LateReturnFineIssuedEventType is the audit event type identifier.
const LateReturnFineIssuedEventType = "LateReturnFineIssued"

// LateReturnFineIssued records that a pending fine was created for a late return.
type LateReturnFineIssued struct {
	FineID     string
	BorrowID   string
	Amount     string
	OccurredAt OccurredAtTS
}

// BuildLateReturnFineIssued creates a new LateReturnFineIssued audit event.
func BuildLateReturnFineIssued(fine Fine) LateReturnFineIssued {
	return LateReturnFineIssued{
		FineID:     fine.ID.String(),
		BorrowID:   fine.BorrowID.String(),
		Amount:     fine.Amount.StringFixed(2),
		OccurredAt: fine.IssueDate,
	}
}

// EventType returns the audit event type identifier.
func (e LateReturnFineIssued) EventType() string {
	return LateReturnFineIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LateReturnFineIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}
