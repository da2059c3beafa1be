package postgreswrapper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-go/features/command/addbook"
	"github.com/openshelf/circulation-go/features/command/registermember"
)

// GivenUniqueID generates a time-ordered unique id for test data.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenBookInCatalog adds a book with the given number of copies through the
// regular add-book workflow.
func GivenBookInCatalog(ctx context.Context, t testing.TB, wrapper Wrapper, bookID uuid.UUID, totalCopies int, at time.Time) {
	handler := addbook.NewCommandHandler(wrapper.GetStore())

	command := addbook.BuildCommand(
		bookID,
		"Learning Domain-Driven Design",
		"978-1-098-10013-1",
		totalCopies,
		at,
	)

	err := handler.Handle(ctx, command)
	assert.NoError(t, err, "error in arranging test data")
}

// GivenRegisteredMember registers an active member whose membership expires
// one year after the given time.
func GivenRegisteredMember(ctx context.Context, t testing.TB, wrapper Wrapper, memberID uuid.UUID, maxBooksAllowed int, at time.Time) {
	handler := registermember.NewCommandHandler(wrapper.GetStore())

	command := registermember.BuildCommand(
		memberID,
		"John Doe",
		at.AddDate(1, 0, 0),
		maxBooksAllowed,
		at,
	)

	err := handler.Handle(ctx, command)
	assert.NoError(t, err, "error in arranging test data")
}
