package borrowbook

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

// CommandHandler orchestrates the complete borrow workflow:
// Lock -> Decide -> Apply -> Audit, all inside one transaction.
// Concurrency conflicts are retried with exponential backoff.
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
		book, bookErr := uow.GetBookForUpdate(txCtx, command.BookID)
		if bookErr != nil {
			return bookErr
		}

		member, memberErr := uow.GetMemberForUpdate(txCtx, command.MemberID)
		if memberErr != nil {
			return memberErr
		}

		decision, decideErr := Decide(book, member, uuid.New(), command)
		if decideErr != nil {
			return decideErr
		}

		if err := uow.InsertBorrow(txCtx, decision.Borrow); err != nil {
			return err
		}

		if err := uow.UpdateBookCopies(txCtx, decision.Book, book.AvailableCopies); err != nil {
			return err
		}

		if err := uow.UpdateMemberBorrowed(txCtx, decision.Member, member.CurrentBooksBorrowed); err != nil {
			return err
		}

		// A member borrowing a book they reserved fulfills the reservation.
		reservationID, found, findErr := uow.FindActiveReservationID(txCtx, command.BookID, command.MemberID)
		if findErr != nil {
			return findErr
		}

		if found {
			if err := uow.MarkReservationFulfilled(txCtx, reservationID); err != nil {
				return err
			}
		}

		return uow.AppendAuditEntry(txCtx, decision.Audit)
	})
}
