package shell

import (
	"context"
	"errors"
	"time"

	"github.com/openshelf/circulation-go/circulation"
)

// Observability bundles the optional collectors a feature handler can be
// configured with. The zero value disables all instrumentation, so handlers
// can call StartCommand and FinishCommand unconditionally.
type Observability struct {
	Logger           Logger
	ContextualLogger ContextualLogger
	MetricsCollector MetricsCollector
	TracingCollector TracingCollector
}

// StartCommand opens the tracing span and logs the start of command processing.
func (o Observability) StartCommand(ctx context.Context, commandType string) (context.Context, SpanContext) {
	ctx, span := StartCommandSpan(ctx, o.TracingCollector, commandType)
	LogCommandStart(ctx, o.Logger, o.ContextualLogger, commandType)

	return ctx, span
}

// FinishCommand records logs, metrics and span completion for one command execution.
func (o Observability) FinishCommand(
	ctx context.Context,
	span SpanContext,
	commandType string,
	startedAt time.Time,
	err error,
) {
	duration := time.Since(startedAt)

	status := StatusSuccess

	switch {
	case err == nil:
		LogCommandSuccess(ctx, o.Logger, o.ContextualLogger, commandType, duration)
	case errors.Is(err, circulation.ErrConcurrencyConflict):
		status = StatusConflict

		LogCommandError(ctx, o.Logger, o.ContextualLogger, commandType, err)
	default:
		status = StatusError

		LogCommandError(ctx, o.Logger, o.ContextualLogger, commandType, err)
	}

	RecordCommandMetrics(ctx, o.MetricsCollector, commandType, status, duration)
	FinishCommandSpan(o.TracingCollector, span, status, duration, err)
}
