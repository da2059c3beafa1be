package circulation

import (
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is the derived status of a membership.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "Active"
	MembershipExpired  MembershipStatus = "Expired"
	MembershipInactive MembershipStatus = "Inactive"
)

// Member represents a library member with a per-member borrow counter.
// Invariant: 0 <= CurrentBooksBorrowed <= MaxBooksAllowed.
type Member struct {
	ID                   uuid.UUID
	Name                 string
	IsActive             bool
	MembershipExpiry     time.Time
	MaxBooksAllowed      int
	CurrentBooksBorrowed int
}

// BuildMember creates a new active Member with no borrows.
func BuildMember(id uuid.UUID, name string, membershipExpiry time.Time, maxBooksAllowed int) Member {
	return Member{
		ID:               id,
		Name:             name,
		IsActive:         true,
		MembershipExpiry: ToDate(membershipExpiry),
		MaxBooksAllowed:  maxBooksAllowed,
	}
}

// CanBorrow reports whether the member may borrow another book:
// active and below their borrowing limit.
func (m Member) CanBorrow() bool {
	return m.CurrentBooksBorrowed < m.MaxBooksAllowed && m.IsActive
}

// DerivedStatus computes the membership status as of the given time.
// Inactive takes precedence over Expired.
func (m Member) DerivedStatus(asOf time.Time) MembershipStatus {
	if !m.IsActive {
		return MembershipInactive
	}

	if m.MembershipExpiry.Before(ToDate(asOf)) {
		return MembershipExpired
	}

	return MembershipActive
}

// WithBorrowAdded returns the member with the borrow counter incremented.
// Returns ErrInvariantViolation if the counter would exceed MaxBooksAllowed.
func (m Member) WithBorrowAdded() (Member, error) {
	if m.CurrentBooksBorrowed >= m.MaxBooksAllowed {
		return Member{}, ErrInvariantViolation
	}

	m.CurrentBooksBorrowed++

	return m, nil
}

// WithBorrowRemoved returns the member with the borrow counter decremented.
// Decrementing below zero is a logic error and is reported, never clamped.
func (m Member) WithBorrowRemoved() (Member, error) {
	if m.CurrentBooksBorrowed <= 0 {
		return Member{}, ErrInvariantViolation
	}

	m.CurrentBooksBorrowed--

	return m, nil
}
