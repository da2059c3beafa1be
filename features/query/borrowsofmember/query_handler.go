package borrowsofmember

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/shared/shell"
)

// Store defines the interface needed by the QueryHandler for circulation store operations.
type Store interface {
	GetMember(ctx context.Context, id uuid.UUID) (circulation.Member, error)
	ListBorrowsOfMember(ctx context.Context, memberID uuid.UUID) ([]circulation.Borrow, error)
}

// QueryHandler lists the borrow transactions of a member with their derived
// overdue state.
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
// Returns circulation.ErrMemberNotFound if the member does not exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	start := time.Now()
	ctx, span := h.observability.StartQuery(ctx, queryType)

	result, err := h.executeQuery(ctx, query)

	h.observability.FinishQuery(ctx, span, queryType, start, err)

	return result, err
}

func (h QueryHandler) executeQuery(ctx context.Context, query Query) (Result, error) {
	if _, err := h.store.GetMember(ctx, query.MemberID); err != nil {
		return Result{}, err
	}

	borrows, err := h.store.ListBorrowsOfMember(ctx, query.MemberID)
	if err != nil {
		return Result{}, err
	}

	return Project(borrows, query), nil
}
