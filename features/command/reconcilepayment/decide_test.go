package reconcilepayment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/reconcilepayment"
)

func arrangePendingFine(amount string, issuedAt time.Time) circulation.Fine {
	return circulation.BuildLateReturnFine(uuid.New(), uuid.New(), decimal.RequireFromString(amount), issuedAt)
}

func Test_Decide_ExactPaymentSettlesAllFines(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	fines := []circulation.Fine{
		arrangePendingFine("4.00", fakeClock),
		arrangePendingFine("6.00", fakeClock.AddDate(0, 0, 1)),
	}

	command := reconcilepayment.BuildCommand(
		member.ID, decimal.RequireFromString("10.00"), circulation.PaymentMethodCash, fakeClock.AddDate(0, 0, 2))

	// act
	decision, err := reconcilepayment.Decide(member, fines, uuid.New(), command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, circulation.PaymentStatusCompleted, decision.Payment.Status)
	assert.Len(t, decision.PaidFines, 2)

	for _, fine := range decision.PaidFines {
		assert.Equal(t, circulation.FineStatusPaid, fine.Status)
		assert.NotNil(t, fine.PaymentDate)
	}
}

func Test_Decide_PaymentSmallerThanOldestFineSettlesNothing(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	fines := []circulation.Fine{arrangePendingFine("10.00", fakeClock)}

	command := reconcilepayment.BuildCommand(
		member.ID, decimal.RequireFromString("5.00"), circulation.PaymentMethodCard, fakeClock.AddDate(0, 0, 1))

	// act
	decision, err := reconcilepayment.Decide(member, fines, uuid.New(), command)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, decision.PaidFines, "fines are never split, so the payment settles nothing")
	assert.Equal(t, circulation.PaymentStatusCompleted, decision.Payment.Status)
}

func Test_Decide_PartialPaymentSettlesOldestFirst(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	oldest := arrangePendingFine("4.00", fakeClock)
	newer := arrangePendingFine("6.00", fakeClock.AddDate(0, 0, 1))

	command := reconcilepayment.BuildCommand(
		member.ID, decimal.RequireFromString("5.00"), circulation.PaymentMethodOnline, fakeClock.AddDate(0, 0, 2))

	// act
	decision, err := reconcilepayment.Decide(member, []circulation.Fine{oldest, newer}, uuid.New(), command)

	// assert
	assert.NoError(t, err)

	if assert.Len(t, decision.PaidFines, 1) {
		assert.Equal(t, oldest.ID, decision.PaidFines[0].ID)
	}
}

func Test_Decide_FailsForNonPositiveAmount(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	member := circulation.BuildMember(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 5)

	command := reconcilepayment.BuildCommand(member.ID, decimal.Zero, circulation.PaymentMethodCash, fakeClock)

	// act
	_, err := reconcilepayment.Decide(member, nil, uuid.New(), command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvalidAmount)
}
