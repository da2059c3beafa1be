package registermember

import (
	"github.com/openshelf/circulation-go/circulation"
)

// Decision holds the new member and the audit event describing the registration.
type Decision struct {
	Member circulation.Member
	Audit  circulation.MemberRegistered
}

// Decide is the pure decision function for registering a member.
// A member must be allowed to borrow at least one book.
func Decide(command Command) (Decision, error) {
	if command.MaxBooksAllowed < 1 {
		return Decision{}, circulation.ErrInvariantViolation
	}

	member := circulation.BuildMember(command.MemberID, command.Name, command.MembershipExpiry, command.MaxBooksAllowed)

	return Decision{
		Member: member,
		Audit:  circulation.BuildMemberRegistered(member, command.OccurredAt),
	}, nil
}
