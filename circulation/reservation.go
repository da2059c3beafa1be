package circulation

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the state of a reservation.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusExpired   ReservationStatus = "expired"
)

// reservationValidityDays is the validity window of a new reservation.
const reservationValidityDays = 7

// Reservation is a member's claim on a book with a limited validity window.
// At most one active reservation may exist per (book, member) pair.
//
// Expiry is derived lazily: no background process transitions the status,
// callers check IsExpired wherever reservation validity matters.
type Reservation struct {
	ID              uuid.UUID
	BookID          uuid.UUID
	MemberID        uuid.UUID
	ReservationDate time.Time
	ExpiryDate      time.Time
	Status          ReservationStatus
}

// BuildReservation creates an active Reservation expiring seven days from now.
func BuildReservation(id uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Reservation {
	reservedAt := ToOccurredAt(occurredAt)

	return Reservation{
		ID:              id,
		BookID:          bookID,
		MemberID:        memberID,
		ReservationDate: reservedAt,
		ExpiryDate:      reservedAt.AddDate(0, 0, reservationValidityDays),
		Status:          ReservationStatusActive,
	}
}

// IsExpired reports whether the reservation's validity window has passed.
func (r Reservation) IsExpired(asOf time.Time) bool {
	return asOf.After(r.ExpiryDate)
}
