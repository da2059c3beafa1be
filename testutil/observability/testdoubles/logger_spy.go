package testdoubles

import (
	"context"
	"sync"

	"github.com/openshelf/circulation-go/circulation"
)

// LogRecord is one captured log call.
type LogRecord struct {
	Level string
	Msg   string
	Args  []any
}

// LoggerSpy captures log calls for inspection in tests. It implements both
// the Logger and the ContextualLogger port.
type LoggerSpy struct {
	records []LogRecord
	mu      sync.Mutex
}

var _ circulation.Logger = (*LoggerSpy)(nil)
var _ circulation.ContextualLogger = (*LoggerSpy)(nil)

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{records: make([]LogRecord, 0)}
}

func (s *LoggerSpy) record(level string, msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Msg: msg, Args: args})
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args...) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.record("info", msg, args...) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.record("warn", msg, args...) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args...) }

func (s *LoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.record("debug", msg, args...)
}

func (s *LoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.record("info", msg, args...)
}

func (s *LoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.record("warn", msg, args...)
}

func (s *LoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.record("error", msg, args...)
}

// GetRecords returns a copy of all captured log calls.
func (s *LoggerSpy) GetRecords() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]LogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// HasMessage reports whether a log call with the given message was captured.
func (s *LoggerSpy) HasMessage(msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Msg == msg {
			return true
		}
	}

	return false
}

// Reset clears all captured log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}
