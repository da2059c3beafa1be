package borrowsofmember

import (
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
)

const (
	queryType = "BorrowsOfMember"
)

// Query represents the intent to list all borrow transactions of a member.
// AsOf is the reference time for the derived overdue view.
type Query struct {
	MemberID uuid.UUID
	AsOf     circulation.OccurredAtTS
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(memberID uuid.UUID, asOf time.Time) Query {
	return Query{
		MemberID: memberID,
		AsOf:     circulation.ToOccurredAt(asOf),
	}
}
