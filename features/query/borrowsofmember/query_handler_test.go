package borrowsofmember_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/borrowbook"
	"github.com/openshelf/circulation-go/features/query/borrowsofmember"
	. "github.com/openshelf/circulation-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_QueryHandler_Handle_DerivesOverdueStateWithoutStoringIt(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	queryHandler := borrowsofmember.NewQueryHandler(wrapper.GetStore())
	borrowHandler := borrowbook.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(ctx, t, wrapper, bookID, 1, fakeClock)
	GivenRegisteredMember(ctx, t, wrapper, memberID, 5, fakeClock)

	err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(bookID, memberID, fakeClock))
	assert.NoError(t, err, "error in arranging test data")

	// act: five days past the due date
	result, err := queryHandler.Handle(ctx, borrowsofmember.BuildQuery(memberID, fakeClock.AddDate(0, 0, 19)))

	// assert
	assert.NoError(t, err)
	require.Len(t, result.Borrows, 1)

	view := result.Borrows[0]
	assert.Equal(t, string(circulation.BorrowStatusActive), view.Status, "The stored status stays active")
	assert.True(t, view.IsOverdue)
	assert.Equal(t, 5, view.DaysOverdue)
	assert.Equal(t, "10.00", view.AccruedFine)
	assert.Equal(t, "0.00", view.FineAmount, "No fine is stored until an explicit return")
}

func Test_QueryHandler_Handle_BorrowWithinTheLoanPeriodIsNotOverdue(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	queryHandler := borrowsofmember.NewQueryHandler(wrapper.GetStore())
	borrowHandler := borrowbook.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(ctx, t, wrapper, bookID, 1, fakeClock)
	GivenRegisteredMember(ctx, t, wrapper, memberID, 5, fakeClock)

	err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(bookID, memberID, fakeClock))
	assert.NoError(t, err, "error in arranging test data")

	// act
	result, err := queryHandler.Handle(ctx, borrowsofmember.BuildQuery(memberID, fakeClock.AddDate(0, 0, 10)))

	// assert
	assert.NoError(t, err)
	require.Len(t, result.Borrows, 1)

	view := result.Borrows[0]
	assert.False(t, view.IsOverdue)
	assert.Equal(t, 0, view.DaysOverdue)
	assert.Equal(t, "0.00", view.AccruedFine)
}

func Test_QueryHandler_Handle_Error_MemberNotFound(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	queryHandler := borrowsofmember.NewQueryHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()

	// act
	_, err := queryHandler.Handle(ctx, borrowsofmember.BuildQuery(GivenUniqueID(t), fakeClock))

	// assert
	assert.ErrorIs(t, err, circulation.ErrMemberNotFound)
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
