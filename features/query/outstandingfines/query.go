package outstandingfines

import (
	"github.com/google/uuid"
)

const (
	queryType = "OutstandingFines"
)

// Query represents the intent to list the pending fines of a member.
type Query struct {
	MemberID uuid.UUID
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(memberID uuid.UUID) Query {
	return Query{MemberID: memberID}
}
