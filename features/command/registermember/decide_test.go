package registermember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/registermember"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	memberID := uuid.New()
	command := registermember.BuildCommand(memberID, "John Doe", fakeClock.AddDate(1, 0, 0), 5, fakeClock)

	// act
	decision, err := registermember.Decide(command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, memberID, decision.Member.ID)
	assert.True(t, decision.Member.IsActive)
	assert.Equal(t, 0, decision.Member.CurrentBooksBorrowed)
	assert.Equal(t, circulation.MemberRegisteredEventType, decision.Audit.EventType())
}

func Test_Decide_FailsForNonPositiveBorrowingLimit(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	command := registermember.BuildCommand(uuid.New(), "John Doe", fakeClock.AddDate(1, 0, 0), 0, fakeClock)

	// act
	_, err := registermember.Decide(command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)
}
