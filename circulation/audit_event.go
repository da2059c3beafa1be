package circulation

import (
	"time"
)

// AuditEvent is a record of a completed lifecycle operation, appended to the
// circulation log in the same transaction as the mutation it describes.
type AuditEvent interface {
	EventType() string
	HasOccurredAt() time.Time
}

// AuditEvents is an alias type for a slice of AuditEvent.
type AuditEvents = []AuditEvent
