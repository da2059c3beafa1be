package returnbook

import (
	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the state changes a successful return produces. Fine is nil
// unless the return was late; Audits then carries both the return event and
// the fine issuance event.
type Decision struct {
	Borrow circulation.Borrow
	Book   circulation.Book
	Member circulation.Member
	Fine   *circulation.Fine
	Audits circulation.AuditEvents
}

// Decide is the pure decision function for returning a book. The overdue
// check and the fine computation both use the single command timestamp, so
// there is no gap between checking lateness and pricing it.
func Decide(
	borrow circulation.Borrow,
	book circulation.Book,
	member circulation.Member,
	fineID uuid.UUID,
	command Command,
) (Decision, error) {

	if borrow.MemberID != command.MemberID {
		return Decision{}, circulation.ErrUnauthorized
	}

	fineAmount := circulation.ZeroAmount
	if circulation.IsOverdue(borrow, command.OccurredAt) {
		fineAmount = circulation.AccruedFine(borrow, command.OccurredAt)
	}

	updatedBorrow, borrowErr := borrow.WithReturn(command.OccurredAt, fineAmount)
	if borrowErr != nil {
		return Decision{}, borrowErr
	}

	updatedBook, bookErr := book.WithCopyReturned()
	if bookErr != nil {
		return Decision{}, bookErr
	}

	updatedMember, memberErr := member.WithBorrowRemoved()
	if memberErr != nil {
		return Decision{}, memberErr
	}

	decision := Decision{
		Borrow: updatedBorrow,
		Book:   updatedBook,
		Member: updatedMember,
		Audits: circulation.AuditEvents{circulation.BuildBookReturned(updatedBorrow, command.OccurredAt)},
	}

	if circulation.IsPositiveAmount(fineAmount) {
		fine := circulation.BuildLateReturnFine(fineID, borrow.ID, fineAmount, command.OccurredAt)
		decision.Fine = &fine
		decision.Audits = append(decision.Audits, circulation.BuildLateReturnFineIssued(fine))
	}

	return decision, nil
}
