package circulation

import (
	"time"
)

// BookAddedToCatalogEventType is the audit event type identifier.
const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog records that a book entered the catalog.
type BookAddedToCatalog struct {
	BookID      string
	Title       string
	ISBN        string
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog audit event.
func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	return BookAddedToCatalog{
		BookID:      book.ID.String(),
		Title:       book.Title,
		ISBN:        book.ISBN,
		TotalCopies: book.TotalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the audit event type identifier.
func (e BookAddedToCatalog) EventType() string {
	return BookAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
