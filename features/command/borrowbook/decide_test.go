package borrowbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/borrowbook"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 2)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)
	borrowID := uuid.New()
	command := borrowbook.BuildCommand(book.ID, member.ID, fakeClock)

	// act
	decision, err := borrowbook.Decide(book, member, borrowID, command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, borrowID, decision.Borrow.ID)
	assert.Equal(t, fakeClock.AddDate(0, 0, 14), decision.Borrow.DueDate)
	assert.Equal(t, 1, decision.Book.AvailableCopies)
	assert.Equal(t, 1, decision.Member.CurrentBooksBorrowed)
	assert.Equal(t, circulation.BookBorrowedEventType, decision.Audit.EventType())
}

func Test_Decide_FailsWhenNoCopyIsAvailable(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	borrowedOut, err := book.WithCopyBorrowed()
	assert.NoError(t, err)

	command := borrowbook.BuildCommand(book.ID, member.ID, fakeClock)

	// act
	_, err = borrowbook.Decide(borrowedOut, member, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrBookUnavailable)
}

func Test_Decide_FailsWhenMemberIsAtTheirLimit(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 2)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 1)

	atLimit, err := member.WithBorrowAdded()
	assert.NoError(t, err)

	command := borrowbook.BuildCommand(book.ID, atLimit.ID, fakeClock)

	// act
	_, err = borrowbook.Decide(book, atLimit, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrMemberIneligible)
}

func Test_Decide_IneligibleMemberWinsOverUnavailableBook(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)
	member.IsActive = false

	borrowedOut, err := book.WithCopyBorrowed()
	assert.NoError(t, err)

	command := borrowbook.BuildCommand(book.ID, member.ID, fakeClock)

	// act
	_, err = borrowbook.Decide(borrowedOut, member, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrMemberIneligible)
}
