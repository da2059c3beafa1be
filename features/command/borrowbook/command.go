package borrowbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a member to borrow a copy of a book.
// It encapsulates all the necessary information required to execute the borrow book use case.
type Command struct {
	BookID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt circulation.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		MemberID:   memberID,
		OccurredAt: circulation.ToOccurredAt(occurredAt),
	}
}
