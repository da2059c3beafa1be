package registermember_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/registermember"
	. "github.com/openshelf/circulation-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := registermember.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	memberID := GivenUniqueID(t)

	// act
	command := registermember.BuildCommand(memberID, "John Doe", fakeClock.AddDate(1, 0, 0), 5, fakeClock)
	err := handler.Handle(ctx, command)

	// assert
	assert.NoError(t, err, "Should successfully register the member")

	member, err := wrapper.GetStore().GetMember(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", member.Name)
	assert.Equal(t, 5, member.MaxBooksAllowed)
	assert.Equal(t, 0, member.CurrentBooksBorrowed)
	assert.True(t, member.IsActive)

	assert.Equal(t, 1, CountAuditEntries(t, wrapper, circulation.MemberRegisteredEventType))
}

func Test_CommandHandler_Handle_Error_InvalidBorrowingLimit(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := registermember.NewCommandHandler(wrapper.GetStore())

	fakeClock := time.Unix(0, 0).UTC()
	memberID := GivenUniqueID(t)

	// act
	command := registermember.BuildCommand(memberID, "John Doe", fakeClock.AddDate(1, 0, 0), 0, fakeClock)
	err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)

	_, err = wrapper.GetStore().GetMember(ctx, memberID)
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
