package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-go/circulation"
	"github.com/openshelf/circulation-go/features/shared/shell"
	"github.com/openshelf/circulation-go/testutil/observability/testdoubles"
)

func arrangeObservability() (shell.Observability, *testdoubles.LoggerSpy, *testdoubles.MetricsCollectorSpy, *testdoubles.TracingCollectorSpy) {
	loggerSpy := testdoubles.NewLoggerSpy()
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	tracingSpy := testdoubles.NewTracingCollectorSpy()

	obs := shell.Observability{
		Logger:           loggerSpy,
		ContextualLogger: loggerSpy,
		MetricsCollector: metricsSpy,
		TracingCollector: tracingSpy,
	}

	return obs, loggerSpy, metricsSpy, tracingSpy
}

func Test_Observability_SuccessfulCommandIsFullyInstrumented(t *testing.T) {
	// arrange
	obs, loggerSpy, metricsSpy, tracingSpy := arrangeObservability()
	start := time.Now()

	// act
	ctx, span := obs.StartCommand(context.Background(), "BorrowBook")
	obs.FinishCommand(ctx, span, "BorrowBook", start, nil)

	// assert
	assert.True(t, loggerSpy.HasMessage(shell.LogMsgCommandStarted))
	assert.True(t, loggerSpy.HasMessage(shell.LogMsgCommandCompleted))

	counters := metricsSpy.GetCounterRecords()
	require.Len(t, counters, 1)
	assert.Equal(t, shell.CommandHandlerCallsMetric, counters[0].Metric)
	assert.Equal(t, shell.StatusSuccess, counters[0].Labels[shell.LogAttrStatus])

	durations := metricsSpy.GetDurationRecords()
	require.Len(t, durations, 1)
	assert.Equal(t, shell.CommandHandlerDurationMetric, durations[0].Metric)

	spans := tracingSpy.GetSpanRecords()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
	assert.True(t, spans[0].Finished)
	assert.Equal(t, shell.StatusSuccess, spans[0].FinishStatus)
}

func Test_Observability_ConcurrencyConflictIsReportedAsConflict(t *testing.T) {
	// arrange
	obs, loggerSpy, metricsSpy, tracingSpy := arrangeObservability()
	start := time.Now()

	// act
	ctx, span := obs.StartCommand(context.Background(), "BorrowBook")
	obs.FinishCommand(ctx, span, "BorrowBook", start, circulation.ErrConcurrencyConflict)

	// assert
	assert.True(t, loggerSpy.HasMessage(shell.LogMsgCommandFailed))

	counters := metricsSpy.GetCounterRecords()
	require.Len(t, counters, 1)
	assert.Equal(t, shell.StatusConflict, counters[0].Labels[shell.LogAttrStatus])

	spans := tracingSpy.GetSpanRecords()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.StatusConflict, spans[0].FinishStatus)
}

func Test_Observability_DomainErrorIsReportedAsError(t *testing.T) {
	// arrange
	obs, _, metricsSpy, tracingSpy := arrangeObservability()
	start := time.Now()

	// act
	ctx, span := obs.StartCommand(context.Background(), "BorrowBook")
	obs.FinishCommand(ctx, span, "BorrowBook", start, circulation.ErrBookUnavailable)

	// assert
	counters := metricsSpy.GetCounterRecords()
	require.Len(t, counters, 1)
	assert.Equal(t, shell.StatusError, counters[0].Labels[shell.LogAttrStatus])

	spans := tracingSpy.GetSpanRecords()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.StatusError, spans[0].FinishStatus)
}

func Test_Observability_ZeroValueDisablesAllInstrumentation(t *testing.T) {
	// arrange
	var obs shell.Observability
	start := time.Now()

	// act: must not panic with no collectors configured
	ctx, span := obs.StartCommand(context.Background(), "BorrowBook")
	obs.FinishCommand(ctx, span, "BorrowBook", start, nil)
	assert.Nil(t, span)
}
