package circulation

import (
	"errors"
)

// Failure taxonomy for the lifecycle operations. Handlers return exactly one
// of these kinds (possibly joined with a driver error) so that the calling
// web layer can render an accurate message.

var (
	// ErrBookNotFound is returned when a referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound is returned when a referenced member does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrBorrowNotFound is returned when a referenced borrow transaction does not exist.
	ErrBorrowNotFound = errors.New("borrow transaction not found")

	// ErrBookUnavailable is returned when a book has no available copies or is not in the available status.
	ErrBookUnavailable = errors.New("book is not available for borrowing")

	// ErrMemberIneligible is returned when a member is inactive or has reached their borrowing limit.
	ErrMemberIneligible = errors.New("member cannot borrow more books")

	// ErrAlreadyReturned is returned when a borrow transaction was already returned.
	ErrAlreadyReturned = errors.New("borrow transaction was already returned")

	// ErrAlreadyReserved is returned when an active reservation already exists for the (book, member) pair.
	ErrAlreadyReserved = errors.New("book is already reserved by this member")

	// ErrUnauthorized is returned when the requesting member does not own the borrow transaction.
	ErrUnauthorized = errors.New("borrow transaction belongs to another member")

	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrInvariantViolation is returned when a counter would leave its valid range.
	// This must never happen if preconditions are enforced; it is a programming
	// defect and aborts the enclosing transaction rather than clamping silently.
	ErrInvariantViolation = errors.New("counter invariant violation")

	// ErrConcurrencyConflict is returned when a concurrent transaction modified
	// the same rows; the operation can be retried.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	// ErrNilDatabaseConnection is returned when a store is constructed without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
)
