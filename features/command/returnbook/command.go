package returnbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a member to return a borrowed book.
// MemberID identifies the requesting member; only the member who borrowed
// the book may return it.
type Command struct {
	BorrowID   uuid.UUID
	MemberID   uuid.UUID
	OccurredAt circulation.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		MemberID:   memberID,
		OccurredAt: circulation.ToOccurredAt(occurredAt),
	}
}
