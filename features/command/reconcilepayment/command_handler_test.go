package reconcilepayment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/borrowbook"
	"github.com/openshelf/circulation-go/features/command/reconcilepayment"
	"github.com/openshelf/circulation-go/features/command/returnbook"
	. "github.com/openshelf/circulation-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_ExactPaymentSettlesTheFine(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := reconcilepayment.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	memberID := GivenUniqueID(t)

	// arrange: a five-days-late return leaves a pending 10.00 fine
	givenPendingTenDollarFine(ctx, t, wrapper, memberID, fakeClock)

	// act
	command := reconcilepayment.BuildCommand(
		memberID,
		decimal.RequireFromString("10.00"),
		circulation.PaymentMethodCash,
		fakeClock.AddDate(0, 0, 20),
	)
	err := handler.Handle(ctx, command)

	// assert
	assert.NoError(t, err, "Should successfully reconcile the payment")

	fines, err := wrapper.GetStore().ListPendingFines(ctx, memberID)
	require.NoError(t, err)
	assert.Empty(t, fines, "An exact payment should settle the fine")

	assert.Equal(t, 1, CountAuditEntries(t, wrapper, circulation.PaymentReconciledEventType))
}

func Test_CommandHandler_Handle_PaymentSmallerThanTheFineSettlesNothing(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := reconcilepayment.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	memberID := GivenUniqueID(t)

	// arrange
	givenPendingTenDollarFine(ctx, t, wrapper, memberID, fakeClock)

	// act
	command := reconcilepayment.BuildCommand(
		memberID,
		decimal.RequireFromString("5.00"),
		circulation.PaymentMethodCard,
		fakeClock.AddDate(0, 0, 20),
	)
	err := handler.Handle(ctx, command)

	// assert: the payment is recorded but the fine stays pending, fines are never split
	assert.NoError(t, err, "Should successfully record the payment")

	fines, err := wrapper.GetStore().ListPendingFines(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, fines, 1)
	assert.Equal(t, circulation.FineStatusPending, fines[0].Status)
	assert.Equal(t, "10.00", fines[0].Amount.StringFixed(2))

	assert.Equal(t, 1, CountAuditEntries(t, wrapper, circulation.PaymentReconciledEventType))
}

func Test_CommandHandler_Handle_Error_NonPositiveAmount(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := reconcilepayment.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	memberID := GivenUniqueID(t)

	// arrange
	GivenRegisteredMember(ctx, t, wrapper, memberID, 5, fakeClock)

	// act
	command := reconcilepayment.BuildCommand(memberID, decimal.Zero, circulation.PaymentMethodCash, fakeClock)
	err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvalidAmount)
	assert.Equal(t, 0, CountAuditEntries(t, wrapper, circulation.PaymentReconciledEventType))
}

func Test_CommandHandler_Handle_Error_MemberNotFound(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := reconcilepayment.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()

	// act
	command := reconcilepayment.BuildCommand(
		GivenUniqueID(t), decimal.RequireFromString("10.00"), circulation.PaymentMethodCash, fakeClock)
	err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrMemberNotFound)
}

// givenPendingTenDollarFine borrows a book at the given time and returns it
// five days late, leaving the member with one pending 10.00 fine.
func givenPendingTenDollarFine(
	ctx context.Context,
	t *testing.T,
	wrapper Wrapper,
	memberID uuid.UUID,
	at time.Time,
) {

	bookID := GivenUniqueID(t)
	GivenBookInCatalog(ctx, t, wrapper, bookID, 1, at)
	GivenRegisteredMember(ctx, t, wrapper, memberID, 5, at)

	borrowHandler := borrowbook.NewCommandHandler(wrapper.GetStore())
	err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(bookID, memberID, at))
	assert.NoError(t, err, "error in arranging test data")

	borrows, err := wrapper.GetStore().ListBorrowsOfMember(ctx, memberID)
	assert.NoError(t, err, "error in arranging test data")
	require.Len(t, borrows, 1)

	returnHandler := returnbook.NewCommandHandler(wrapper.GetStore())
	err = returnHandler.Handle(ctx, returnbook.BuildCommand(borrows[0].ID, memberID, at.AddDate(0, 0, 19)))
	assert.NoError(t, err, "error in arranging test data")

	fines, err := wrapper.GetStore().ListPendingFines(ctx, memberID)
	assert.NoError(t, err, "error in arranging test data")
	require.Len(t, fines, 1)
}

func setupTestEnvironment(t *testing.T) (context.Context, Wrapper, func()) {
	wrapper := CreateWrapperWithTestConfig(t)
	CleanUp(t, wrapper)

	cleanup := func() {
		CleanUp(t, wrapper)
		wrapper.Close()
	}

	return context.Background(), wrapper, cleanup
}
