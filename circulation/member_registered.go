package circulation

import (
	"time"
)

// MemberRegisteredEventType is the audit event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered records that a member joined the library.
type MemberRegistered struct {
	MemberID         string
	Name             string
	MembershipExpiry string
	MaxBooksAllowed  int
	OccurredAt       OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered audit event.
func BuildMemberRegistered(member Member, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		MemberID:         member.ID.String(),
		Name:             member.Name,
		MembershipExpiry: member.MembershipExpiry.Format(time.DateOnly),
		MaxBooksAllowed:  member.MaxBooksAllowed,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// EventType returns the audit event type identifier.
func (e MemberRegistered) EventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
