package circulationstats

const (
	queryType = "CirculationStats"
)

// Query represents the intent to read the library-wide circulation counters.
// It carries no parameters.
type Query struct{}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
