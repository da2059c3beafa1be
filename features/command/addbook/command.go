package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a new book to the catalog.
type Command struct {
	BookID      uuid.UUID
	Title       string
	ISBN        string
	TotalCopies int
	OccurredAt  circulation.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, title string, isbn string, totalCopies int, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		Title:       title,
		ISBN:        isbn,
		TotalCopies: totalCopies,
		OccurredAt:  circulation.ToOccurredAt(occurredAt),
	}
}
