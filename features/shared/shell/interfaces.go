package shell

import (
	"context"

	"github.com/openshelf/circulation-go/circulation"
)

// Interface aliases for convenience when instrumenting feature handlers.
// These match the circulation store observability interfaces for consistency.

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = circulation.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = circulation.ContextualMetricsCollector

// TracingCollector interface for distributed tracing in handlers.
type TracingCollector = circulation.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = circulation.SpanContext

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = circulation.ContextualLogger

// Logger interface for basic logging in handlers.
type Logger = circulation.Logger

// Command represents the contract for all command types in the circulation
// application. Each command encapsulates the intent and parameters needed to
// execute a specific lifecycle operation. The CommandType method enables
// polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandHandler defines the contract for components that process commands.
// Implementations handle infrastructure concerns (store access, retry,
// observability) while delegating business decisions to pure functions.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) error
}

// Query represents the contract for all query types in the circulation
// application. Each query encapsulates the parameters needed to retrieve a
// specific read model.
type Query interface {
	QueryType() string
}

// QueryHandler defines the contract for components that process queries and
// return read models. The generic parameters Q and R ensure type safety
// between queries and their corresponding results.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
