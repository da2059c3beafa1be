package reservebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/reservebook"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)
	reservationID := uuid.New()
	command := reservebook.BuildCommand(book.ID, member.ID, fakeClock)

	// act
	decision, err := reservebook.Decide(book, member, false, reservationID, command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, reservationID, decision.Reservation.ID)
	assert.Equal(t, circulation.ReservationStatusActive, decision.Reservation.Status)
	assert.Equal(t, fakeClock.AddDate(0, 0, 7), decision.Reservation.ExpiryDate)
	assert.Equal(t, circulation.BookReservedEventType, decision.Audit.EventType())
}

func Test_Decide_FailsWhenMemberAlreadyHoldsAnActiveReservation(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)
	command := reservebook.BuildCommand(book.ID, member.ID, fakeClock)

	// act
	_, err := reservebook.Decide(book, member, true, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrAlreadyReserved)
}
