package circulation

import (
	"time"
)

// BookReservedEventType is the audit event type identifier.
const BookReservedEventType = "BookReserved"

// BookReserved records that a member placed a reservation on a book.
type BookReserved struct {
	ReservationID string
	BookID        string
	MemberID      string
	ExpiryDate    string
	OccurredAt    OccurredAtTS
}

// BuildBookReserved creates a new BookReserved audit event from a reservation.
func BuildBookReserved(reservation Reservation) BookReserved {
	return BookReserved{
		ReservationID: reservation.ID.String(),
		BookID:        reservation.BookID.String(),
		MemberID:      reservation.MemberID.String(),
		ExpiryDate:    reservation.ExpiryDate.Format(time.RFC3339),
		OccurredAt:    reservation.ReservationDate,
	}
}

// EventType returns the audit event type identifier.
func (e BookReserved) EventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
