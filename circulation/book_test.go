package circulation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
)

func Test_BuildBook_AllCopiesAvailable(t *testing.T) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 3)

	assert.Equal(t, circulation.BookStatusAvailable, book.Status)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
	assert.True(t, book.IsAvailable())
}

func Test_WithCopyBorrowed_LastCopySetsBorrowedStatus(t *testing.T) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)

	updated, err := book.WithCopyBorrowed()

	assert.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableCopies)
	assert.Equal(t, circulation.BookStatusBorrowed, updated.Status)
	assert.False(t, updated.IsAvailable())
}

func Test_WithCopyBorrowed_FailsWithoutCopies(t *testing.T) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)

	updated, err := book.WithCopyBorrowed()
	assert.NoError(t, err)

	_, err = updated.WithCopyBorrowed()

	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)
}

func Test_WithCopyReturned_RestoresAvailability(t *testing.T) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 1)

	borrowed, err := book.WithCopyBorrowed()
	assert.NoError(t, err)

	returned, err := borrowed.WithCopyReturned()

	assert.NoError(t, err)
	assert.Equal(t, 1, returned.AvailableCopies)
	assert.Equal(t, circulation.BookStatusAvailable, returned.Status)
}

func Test_WithCopyReturned_FailsAboveTotal(t *testing.T) {
	book := circulation.BuildBook(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 2)

	_, err := book.WithCopyReturned()

	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)
}
