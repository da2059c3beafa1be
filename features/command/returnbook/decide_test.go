package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/returnbook"
)

func arrangeLoanedState(fakeClock time.Time) (circulation.Borrow, circulation.Book, circulation.Member) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	loanedBook, _ := book.WithCopyBorrowed()
	loanedMember, _ := member.WithBorrowAdded()
	borrow := circulation.BuildBorrow(uuid.New(), book.ID, member.ID, fakeClock)

	return borrow, loanedBook, loanedMember
}

func Test_Decide_OnTimeReturnIssuesNoFine(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	borrow, book, member := arrangeLoanedState(fakeClock)
	command := returnbook.BuildCommand(borrow.ID, member.ID, fakeClock.AddDate(0, 0, 7))

	// act
	decision, err := returnbook.Decide(borrow, book, member, uuid.New(), command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, circulation.BorrowStatusReturned, decision.Borrow.Status)
	assert.True(t, decision.Borrow.FineAmount.IsZero())
	assert.Nil(t, decision.Fine)
	assert.Len(t, decision.Audits, 1)
	assert.Equal(t, circulation.BookReturnedEventType, decision.Audits[0].EventType())
	assert.Equal(t, 1, decision.Book.AvailableCopies)
	assert.Equal(t, 0, decision.Member.CurrentBooksBorrowed)
}

func Test_Decide_LateReturnIssuesPendingFine(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	borrow, book, member := arrangeLoanedState(fakeClock)
	fineID := uuid.New()
	command := returnbook.BuildCommand(borrow.ID, member.ID, fakeClock.AddDate(0, 0, 19))

	// act
	decision, err := returnbook.Decide(borrow, book, member, fineID, command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "10.00", decision.Borrow.FineAmount.StringFixed(2))

	if assert.NotNil(t, decision.Fine) {
		assert.Equal(t, fineID, decision.Fine.ID)
		assert.Equal(t, borrow.ID, decision.Fine.BorrowID)
		assert.Equal(t, "10.00", decision.Fine.Amount.StringFixed(2))
		assert.Equal(t, circulation.FineReasonLateReturn, decision.Fine.Reason)
		assert.Equal(t, circulation.FineStatusPending, decision.Fine.Status)
	}

	assert.Len(t, decision.Audits, 2)
	assert.Equal(t, circulation.BookReturnedEventType, decision.Audits[0].EventType())
	assert.Equal(t, circulation.LateReturnFineIssuedEventType, decision.Audits[1].EventType())
}

func Test_Decide_FailsForAnotherMembersBorrow(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	borrow, book, member := arrangeLoanedState(fakeClock)
	otherMemberID := uuid.New()
	command := returnbook.BuildCommand(borrow.ID, otherMemberID, fakeClock.AddDate(0, 0, 7))

	// act
	_, err := returnbook.Decide(borrow, book, member, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrUnauthorized)
}

func Test_Decide_FailsWhenBorrowIsAlreadyReturned(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	borrow, book, member := arrangeLoanedState(fakeClock)

	returned, err := borrow.WithReturn(fakeClock.AddDate(0, 0, 7), circulation.ZeroAmount)
	assert.NoError(t, err)

	command := returnbook.BuildCommand(borrow.ID, member.ID, fakeClock.AddDate(0, 0, 8))

	// act
	_, err = returnbook.Decide(returned, book, member, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrAlreadyReturned)
}
