package returnbook

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

// CommandHandler orchestrates the complete return workflow:
// Lock -> Decide -> Apply -> Audit, all inside one transaction.
// Rows are locked in borrow, book, member order; every handler that touches
// the same entities must keep that order to stay deadlock free.
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
		borrow, borrowErr := uow.GetBorrowForUpdate(txCtx, command.BorrowID)
		if borrowErr != nil {
			return borrowErr
		}

		book, bookErr := uow.GetBookForUpdate(txCtx, borrow.BookID)
		if bookErr != nil {
			return bookErr
		}

		member, memberErr := uow.GetMemberForUpdate(txCtx, borrow.MemberID)
		if memberErr != nil {
			return memberErr
		}

		decision, decideErr := Decide(borrow, book, member, uuid.New(), command)
		if decideErr != nil {
			return decideErr
		}

		if err := uow.UpdateBorrowReturned(txCtx, decision.Borrow); err != nil {
			return err
		}

		if err := uow.UpdateBookCopies(txCtx, decision.Book, book.AvailableCopies); err != nil {
			return err
		}

		if err := uow.UpdateMemberBorrowed(txCtx, decision.Member, member.CurrentBooksBorrowed); err != nil {
			return err
		}

		if decision.Fine != nil {
			if err := uow.InsertFine(txCtx, *decision.Fine); err != nil {
				return err
			}
		}

		for _, audit := range decision.Audits {
			if err := uow.AppendAuditEntry(txCtx, audit); err != nil {
				return err
			}
		}

		return nil
	})
}
