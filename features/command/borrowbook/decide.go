package borrowbook

import (
	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the state changes a successful borrow produces: the new
// borrow transaction, the book and member with adjusted counters, and the
// audit event describing the operation.
type Decision struct {
	Borrow circulation.Borrow
	Book   circulation.Book
	Member circulation.Member
	Audit  circulation.BookBorrowed
}

// Decide is the pure decision function for borrowing a book. It checks the
// preconditions against the loaded state and computes all resulting changes
// without touching any infrastructure.
//
// The member check runs first so an ineligible member gets MemberIneligible
// even when the book also has no copies left.
func Decide(book circulation.Book, member circulation.Member, borrowID uuid.UUID, command Command) (Decision, error) {
	if !member.CanBorrow() {
		return Decision{}, circulation.ErrMemberIneligible
	}

	if !book.IsAvailable() {
		return Decision{}, circulation.ErrBookUnavailable
	}

	updatedBook, bookErr := book.WithCopyBorrowed()
	if bookErr != nil {
		return Decision{}, bookErr
	}

	updatedMember, memberErr := member.WithBorrowAdded()
	if memberErr != nil {
		return Decision{}, memberErr
	}

	borrow := circulation.BuildBorrow(borrowID, book.ID, member.ID, command.OccurredAt)

	return Decision{
		Borrow: borrow,
		Book:   updatedBook,
		Member: updatedMember,
		Audit:  circulation.BuildBookBorrowed(borrow),
	}, nil
}
