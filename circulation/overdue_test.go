package circulation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
)

func activeBorrowAt(borrowedAt time.Time) circulation.Borrow {
	return circulation.BuildBorrow(uuid.New(), uuid.New(), uuid.New(), borrowedAt)
}

func Test_IsOverdue_FalseOnDueDate(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := activeBorrowAt(borrowedAt)

	onDueDate := borrowedAt.AddDate(0, 0, 14)

	assert.False(t, circulation.IsOverdue(borrow, onDueDate), "A borrow is not overdue on its due date")
	assert.Equal(t, 0, circulation.DaysOverdue(borrow, onDueDate))
}

func Test_IsOverdue_TrueAfterDueDate(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := activeBorrowAt(borrowedAt)

	dayAfterDue := borrowedAt.AddDate(0, 0, 15)

	assert.True(t, circulation.IsOverdue(borrow, dayAfterDue), "A borrow is overdue the day after its due date")
	assert.Equal(t, 1, circulation.DaysOverdue(borrow, dayAfterDue))
}

func Test_IsOverdue_FalseOnceReturned(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := activeBorrowAt(borrowedAt)

	returnedAt := borrowedAt.AddDate(0, 0, 20)
	returned, err := borrow.WithReturn(returnedAt, circulation.ZeroAmount)
	assert.NoError(t, err)

	assert.False(t, circulation.IsOverdue(returned, returnedAt), "A returned borrow is never overdue")
	assert.Equal(t, 0, circulation.DaysOverdue(returned, returnedAt))
}

func Test_AccruedFine_FiveDaysLate(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := activeBorrowAt(borrowedAt)

	fiveDaysLate := borrowedAt.AddDate(0, 0, 19)

	assert.Equal(t, 5, circulation.DaysOverdue(borrow, fiveDaysLate))
	assert.Equal(t, "10.00", circulation.AccruedFine(borrow, fiveDaysLate).StringFixed(2))
}

func Test_AccruedFine_ZeroWhenNotOverdue(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := activeBorrowAt(borrowedAt)

	beforeDue := borrowedAt.AddDate(0, 0, 10)

	assert.True(t, circulation.AccruedFine(borrow, beforeDue).IsZero())
}
