package circulation

import (
	"github.com/google/uuid"
)

// BookStatus represents the circulation status of a catalog book.
type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusBorrowed    BookStatus = "borrowed"
	BookStatusReserved    BookStatus = "reserved"
	BookStatusMaintenance BookStatus = "maintenance"
)

// Book represents a catalog entry with per-book copy counters.
// Invariant: 0 <= AvailableCopies <= TotalCopies, and Status is
// BookStatusAvailable only while AvailableCopies > 0.
type Book struct {
	ID              uuid.UUID
	Title           string
	ISBN            string
	Status          BookStatus
	TotalCopies     int
	AvailableCopies int
}

// BuildBook creates a new catalog Book with all copies available.
func BuildBook(id uuid.UUID, title string, isbn string, totalCopies int) Book {
	return Book{
		ID:              id,
		Title:           title,
		ISBN:            isbn,
		Status:          BookStatusAvailable,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
}

// IsAvailable reports whether a copy of the book can be borrowed right now.
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0 && b.Status == BookStatusAvailable
}

// WithCopyBorrowed returns the book with one available copy removed,
// recomputing the status (last copy gone => borrowed).
// Returns ErrInvariantViolation if no copy is available to remove.
func (b Book) WithCopyBorrowed() (Book, error) {
	if b.AvailableCopies <= 0 {
		return Book{}, ErrInvariantViolation
	}

	b.AvailableCopies--
	if b.AvailableCopies == 0 {
		b.Status = BookStatusBorrowed
	}

	return b, nil
}

// WithCopyReturned returns the book with one available copy added back,
// recomputing the status (borrowed with copies again => available).
// Returns ErrInvariantViolation if the counter would exceed TotalCopies.
func (b Book) WithCopyReturned() (Book, error) {
	if b.AvailableCopies >= b.TotalCopies {
		return Book{}, ErrInvariantViolation
	}

	b.AvailableCopies++
	if b.Status == BookStatusBorrowed && b.AvailableCopies > 0 {
		b.Status = BookStatusAvailable
	}

	return b, nil
}
