package addbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/command/addbook"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	bookID := uuid.New()
	command := addbook.BuildCommand(bookID, "Learning Domain-Driven Design", "978-1-098-10013-1", 3, fakeClock)

	// act
	decision, err := addbook.Decide(command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, bookID, decision.Book.ID)
	assert.Equal(t, 3, decision.Book.AvailableCopies)
	assert.Equal(t, circulation.BookAddedToCatalogEventType, decision.Audit.EventType())
}

func Test_Decide_FailsForNonPositiveTotalCopies(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()
	command := addbook.BuildCommand(uuid.New(), "Learning Domain-Driven Design", "978-1-098-10013-1", 0, fakeClock)

	// act
	_, err := addbook.Decide(command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvariantViolation)
}
