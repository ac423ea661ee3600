// Package testutil holds shared helpers for package tests.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer is a slog.Handler that captures records in memory so tests can
// assert on what was logged.
type LogBuffer struct {
	mu      sync.Mutex
	records []LogRecord
	t       *testing.T
}

// NewTestLogger returns a logger writing into a fresh LogBuffer. Records are
// also echoed through t.Logf for failed-test debugging.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{t: t}
	return slog.New(buf), buf
}

func (b *LogBuffer) Handle(_ context.Context, r slog.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	b.records = append(b.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})

	if b.t != nil {
		b.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

func (b *LogBuffer) Enabled(context.Context, slog.Level) bool { return true }
func (b *LogBuffer) WithAttrs([]slog.Attr) slog.Handler       { return b }
func (b *LogBuffer) WithGroup(string) slog.Handler            { return b }

// Records returns a copy of the captured records.
func (b *LogBuffer) Records() []LogRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogRecord, len(b.records))
	copy(out, b.records)
	return out
}

// HasMessage reports whether any captured record has the given message.
func (b *LogBuffer) HasMessage(msg string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if r.Message == msg {
			return true
		}
	}
	return false
}

// CountLevel returns the number of records at the given level.
func (b *LogBuffer) CountLevel(level slog.Level) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.records {
		if r.Level == level {
			n++
		}
	}
	return n
}
