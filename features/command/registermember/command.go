package registermember

import (
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a new library member.
type Command struct {
	MemberID         uuid.UUID
	Name             string
	MembershipExpiry time.Time
	MaxBooksAllowed  int
	OccurredAt       circulation.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	memberID uuid.UUID,
	name string,
	membershipExpiry time.Time,
	maxBooksAllowed int,
	occurredAt time.Time,
) Command {

	return Command{
		MemberID:         memberID,
		Name:             name,
		MembershipExpiry: membershipExpiry,
		MaxBooksAllowed:  maxBooksAllowed,
		OccurredAt:       circulation.ToOccurredAt(occurredAt),
	}
}
