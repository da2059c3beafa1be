package reservebook

import (
	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the reservation a successful reserve produces and the audit
// event describing it.
type Decision struct {
	Reservation circulation.Reservation
	Audit       circulation.BookReserved
}

// Decide is the pure decision function for reserving a book. The duplicate
// check runs against the reservation state the handler loaded under lock;
// hasActiveReservation reports whether the member already holds an active
// reservation for this book.
func Decide(
	book circulation.Book,
	member circulation.Member,
	hasActiveReservation bool,
	reservationID uuid.UUID,
	command Command,
) (Decision, error) {

	if hasActiveReservation {
		return Decision{}, circulation.ErrAlreadyReserved
	}

	reservation := circulation.BuildReservation(reservationID, book.ID, member.ID, command.OccurredAt)

	return Decision{
		Reservation: reservation,
		Audit:       circulation.BuildBookReserved(reservation),
	}, nil
}
