package registermember

import (
	"context"
	"time"

	"github.com/openshelf/circulation-go/circulation/postgresengine"
	"github.com/openshelf/circulation-go/features/shared/shell"
)

// Store defines the interface needed by the CommandHandler for circulation store operations.
type Store interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, uow *postgresengine.UnitOfWork) error) error
}

// CommandHandler registers new library members.
type CommandHandler struct {
	store         Store
	retryOptions  []shell.RetryOption
	observability shell.Observability
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithObservability sets the observability collectors for the handler.
func WithObservability(obs shell.Observability) Option {
	return func(h *CommandHandler) {
		h.observability = obs
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	start := time.Now()
	ctx, span := h.observability.StartCommand(ctx, commandType)

	err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	h.observability.FinishCommand(ctx, span, commandType, start, err)

	return err
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.store.InTransaction(ctx, func(txCtx context.Context, uow *postgresengine.UnitOfWork) error {
		decision, decideErr := Decide(command)
		if decideErr != nil {
			return decideErr
		}

		if err := uow.InsertMember(txCtx, decision.Member); err != nil {
			return err
		}

		return uow.AppendAuditEntry(txCtx, decision.Audit)
	})
}
