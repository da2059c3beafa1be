package circulationstats

import (
	"context"
	"time"

	"github.com/openshelf/circulation-go/circulation/postgresengine"
	"github.com/openshelf/circulation-go/features/shared/shell"
)

// Store defines the interface needed by the QueryHandler for circulation store operations.
type Store interface {
	GetStats(ctx context.Context) (postgresengine.Stats, error)
}

// QueryHandler reads the library-wide circulation counters.
type QueryHandler struct {
	store         Store
	observability shell.Observability
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithObservability sets the observability collectors for the handler.
func WithObservability(obs shell.Observability) Option {
	return func(h *QueryHandler) {
		h.observability = obs
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	handler := QueryHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the query and builds the read model.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	start := time.Now()
	ctx, span := h.observability.StartQuery(ctx, queryType)

	stats, err := h.store.GetStats(ctx)
	result := Result{
		TotalBooks:     stats.TotalBooks,
		AvailableBooks: stats.AvailableBooks,
		TotalMembers:   stats.TotalMembers,
		ActiveBorrows:  stats.ActiveBorrows,
	}

	h.observability.FinishQuery(ctx, span, queryType, start, err)

	if err != nil {
		return Result{}, err
	}

	return result, nil
}
