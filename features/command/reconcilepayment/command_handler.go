package reconcilepayment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-go/circulation/postgresengine"
	"github.com/openshelf/circulation-go/features/shared/shell"
)

// Store defines the interface needed by the CommandHandler for circulation store operations.
type Store interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, uow *postgresengine.UnitOfWork) error) error
}

// CommandHandler orchestrates the complete reconciliation workflow. The
// member row and all their pending fine rows are locked before deciding, so
// two concurrent payments cannot settle the same fine twice.
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
		member, memberErr := uow.GetMemberForUpdate(txCtx, command.MemberID)
		if memberErr != nil {
			return memberErr
		}

		pendingFines, finesErr := uow.ListPendingFinesForUpdate(txCtx, command.MemberID)
		if finesErr != nil {
			return finesErr
		}

		decision, decideErr := Decide(member, pendingFines, uuid.New(), command)
		if decideErr != nil {
			return decideErr
		}

		if err := uow.InsertPayment(txCtx, decision.Payment); err != nil {
			return err
		}

		for _, fine := range decision.PaidFines {
			if err := uow.MarkFinePaid(txCtx, fine); err != nil {
				return err
			}

			if err := uow.LinkPaymentToFine(txCtx, decision.Payment.ID, fine.ID); err != nil {
				return err
			}
		}

		return uow.AppendAuditEntry(txCtx, decision.Audit)
	})
}
