package testdoubles

import (
	"context"
	"sync"

	"github.com/openshelf/circulation-go/circulation"
)

// SpanRecord is one captured span with its lifecycle data.
type SpanRecord struct {
	Name         string
	StartAttrs   map[string]string
	FinishStatus string
	FinishAttrs  map[string]string
	Finished     bool
}

// SpanContextSpy is the SpanContext handed out by the TracingCollectorSpy.
type SpanContextSpy struct {
	record *SpanRecord
	spy    *TracingCollectorSpy
}

// SetStatus implements the SpanContext port.
func (s *SpanContextSpy) SetStatus(status string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.record.FinishStatus = status
}

// AddAttribute implements the SpanContext port.
func (s *SpanContextSpy) AddAttribute(key, value string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	if s.record.FinishAttrs == nil {
		s.record.FinishAttrs = make(map[string]string)
	}

	s.record.FinishAttrs[key] = value
}

// TracingCollectorSpy captures spans for inspection in tests.
type TracingCollectorSpy struct {
	records []*SpanRecord
	mu      sync.Mutex
}

var _ circulation.TracingCollector = (*TracingCollectorSpy)(nil)

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{records: make([]*SpanRecord, 0)}
}

// StartSpan implements the TracingCollector port.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context, name string, attrs map[string]string) (context.Context, circulation.SpanContext) {

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &SpanRecord{Name: name, StartAttrs: copyLabels(attrs)}
	s.records = append(s.records, record)

	return ctx, &SpanContextSpy{record: record, spy: s}
}

// FinishSpan implements the TracingCollector port.
func (s *TracingCollectorSpy) FinishSpan(spanCtx circulation.SpanContext, status string, attrs map[string]string) {
	spy, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spy.record.FinishStatus = status
	spy.record.Finished = true

	if spy.record.FinishAttrs == nil {
		spy.record.FinishAttrs = make(map[string]string, len(attrs))
	}

	for k, v := range attrs {
		spy.record.FinishAttrs[k] = v
	}
}

// GetSpanRecords returns a copy of all captured spans.
func (s *TracingCollectorSpy) GetSpanRecords() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpanRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, *r)
	}

	return records
}

// Reset clears all captured spans.
func (s *TracingCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}
