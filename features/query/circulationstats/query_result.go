package circulationstats

// Result is the read model of library-wide circulation counters.
type Result struct {
	TotalBooks     int64
	AvailableBooks int64
	TotalMembers   int64
	ActiveBorrows  int64
}
