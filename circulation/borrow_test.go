package circulation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
)

func Test_BuildBorrow_DueDateIsFourteenDaysAfterBorrowDate(t *testing.T) {
	borrowedAt := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	borrow := circulation.BuildBorrow(uuid.New(), uuid.New(), uuid.New(), borrowedAt)

	assert.Equal(t, circulation.BorrowStatusActive, borrow.Status)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), borrow.DueDate)
	assert.True(t, borrow.FineAmount.IsZero())
	assert.Nil(t, borrow.ReturnDate)
}

func Test_WithReturn_FinalizesStateAndFine(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := circulation.BuildBorrow(uuid.New(), uuid.New(), uuid.New(), borrowedAt)

	returnedAt := borrowedAt.AddDate(0, 0, 19)
	fine := circulation.AccruedFine(borrow, returnedAt)

	returned, err := borrow.WithReturn(returnedAt, fine)

	assert.NoError(t, err)
	assert.Equal(t, circulation.BorrowStatusReturned, returned.Status)
	assert.NotNil(t, returned.ReturnDate)
	assert.Equal(t, "10.00", returned.FineAmount.StringFixed(2))
}

func Test_WithReturn_FailsWhenAlreadyReturned(t *testing.T) {
	borrowedAt := time.Unix(0, 0).UTC()
	borrow := circulation.BuildBorrow(uuid.New(), uuid.New(), uuid.New(), borrowedAt)

	returned, err := borrow.WithReturn(borrowedAt.AddDate(0, 0, 7), circulation.ZeroAmount)
	assert.NoError(t, err)

	_, err = returned.WithReturn(borrowedAt.AddDate(0, 0, 8), circulation.ZeroAmount)

	assert.ErrorIs(t, err, circulation.ErrAlreadyReturned)
}

func Test_Fine_WithPayment_OnlySettlesPendingFines(t *testing.T) {
	issuedAt := time.Unix(0, 0).UTC()
	fine := circulation.BuildLateReturnFine(uuid.New(), uuid.New(), circulation.FinePerDay, issuedAt)

	paid, err := fine.WithPayment(issuedAt.AddDate(0, 0, 1), "cash")

	assert.NoError(t, err)
	assert.Equal(t, circulation.FineStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "cash", paid.PaymentMethod)

	_, err = paid.WithPayment(issuedAt.AddDate(0, 0, 2), "cash")

	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)
}
