package circulationstats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/features/command/borrowbook"
	"github.com/openshelf/circulation-go/features/query/circulationstats"
	. "github.com/openshelf/circulation-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_QueryHandler_Handle_CountsTheLibraryWideCirculationState(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	queryHandler := circulationstats.NewQueryHandler(wrapper.GetStore())
	borrowHandler := borrowbook.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	firstBookID := GivenUniqueID(t)
	secondBookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(ctx, t, wrapper, firstBookID, 1, fakeClock)
	GivenBookInCatalog(ctx, t, wrapper, secondBookID, 2, fakeClock)
	GivenRegisteredMember(ctx, t, wrapper, memberID, 5, fakeClock)

	err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(firstBookID, memberID, fakeClock.Add(time.Hour)))
	assert.NoError(t, err, "error in arranging test data")

	// act
	result, err := queryHandler.Handle(ctx, circulationstats.BuildQuery())

	// assert
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalBooks)
	assert.Equal(t, int64(1), result.AvailableBooks, "Only the book with copies left counts as available")
	assert.Equal(t, int64(1), result.TotalMembers)
	assert.Equal(t, int64(1), result.ActiveBorrows)
}

func Test_QueryHandler_Handle_EmptyLibraryCountsAreZero(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	queryHandler := circulationstats.NewQueryHandler(wrapper.GetStore())

	// act
	result, err := queryHandler.Handle(ctx, circulationstats.BuildQuery())

	// assert
	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalBooks)
	assert.Equal(t, int64(0), result.AvailableBooks)
	assert.Equal(t, int64(0), result.TotalMembers)
	assert.Equal(t, int64(0), result.ActiveBorrows)
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
