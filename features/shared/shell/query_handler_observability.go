package shell

import (
	"context"
	"fmt"
	"time"
)

const (
	// QueryHandlerDurationMetric tracks query handler execution duration (OpenTelemetry-compatible).
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"
	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// StartQuery opens the tracing span for query processing.
func (o Observability) StartQuery(ctx context.Context, queryType string) (context.Context, SpanContext) {
	if o.TracingCollector == nil {
		return ctx, nil
	}

	return o.TracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{
		LogAttrQueryType: queryType,
	})
}

// FinishQuery records logs, metrics and span completion for one query execution.
func (o Observability) FinishQuery(
	ctx context.Context,
	span SpanContext,
	queryType string,
	startedAt time.Time,
	err error,
) {
	duration := time.Since(startedAt)

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	o.logQueryOutcome(ctx, queryType, duration, err)
	o.recordQueryMetrics(ctx, queryType, status, duration)

	if o.TracingCollector != nil && span != nil {
		attrs := map[string]string{
			LogAttrStatus:     status,
			LogAttrDurationMS: fmt.Sprintf("%.2f", ToMilliseconds(duration)),
		}

		if err != nil {
			attrs[LogAttrError] = err.Error()
		}

		o.TracingCollector.FinishSpan(span, status, attrs)
	}
}

func (o Observability) logQueryOutcome(ctx context.Context, queryType string, duration time.Duration, err error) {
	if err != nil {
		args := []any{LogAttrQueryType, queryType, LogAttrError, err.Error()}

		if o.ContextualLogger != nil {
			o.ContextualLogger.ErrorContext(ctx, LogMsgQueryFailed, args...)
		} else if o.Logger != nil {
			o.Logger.Error(LogMsgQueryFailed, args...)
		}

		return
	}

	args := []any{LogAttrQueryType, queryType, LogAttrDurationMS, ToMilliseconds(duration)}

	if o.ContextualLogger != nil {
		o.ContextualLogger.InfoContext(ctx, LogMsgQueryCompleted, args...)
	} else if o.Logger != nil {
		o.Logger.Info(LogMsgQueryCompleted, args...)
	}
}

func (o Observability) recordQueryMetrics(ctx context.Context, queryType string, status string, duration time.Duration) {
	if o.MetricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}

	if contextualCollector, ok := o.MetricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, QueryHandlerDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, QueryHandlerCallsMetric, labels)
	} else {
		o.MetricsCollector.RecordDuration(QueryHandlerDurationMetric, duration, labels)
		o.MetricsCollector.IncrementCounter(QueryHandlerCallsMetric, labels)
	}
}
