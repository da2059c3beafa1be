package addbook

import (
	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the new catalog book and the audit event describing it.
type Decision struct {
	Book  circulation.Book
	Audit circulation.BookAddedToCatalog
}

// Decide is the pure decision function for adding a book to the catalog.
// A book must enter the catalog with at least one copy.
func Decide(command Command) (Decision, error) {
	if command.TotalCopies < 1 {
		return Decision{}, circulation.ErrInvariantViolation
	}

	book := circulation.BuildBook(command.BookID, command.Title, command.ISBN, command.TotalCopies)

	return Decision{
		Book:  book,
		Audit: circulation.BuildBookAddedToCatalog(book, command.OccurredAt),
	}, nil
}
