// Package activity records the bounded, newest-first status log shown in the
// dashboard's activity pane.
package activity

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Severity classifies an entry for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultCapacity is how many entries a Recorder keeps.
const DefaultCapacity = 50

// Entry is one immutable activity message.
type Entry struct {
	ID        string
	Message   string
	Severity  Severity
	Timestamp time.Time
}

// Recorder keeps the most recent entries, newest first.
type Recorder struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	counter  uint64
	now      func() time.Time
	logger   *zap.Logger
	notify   []func(Entry)
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithCapacity overrides DefaultCapacity. Values below one are ignored.
func WithCapacity(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger mirrors every entry into the diagnostic log.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithListener calls fn with every new entry, outside the recorder's lock.
func WithListener(fn func(Entry)) Option {
	return func(r *Recorder) {
		if fn != nil {
			r.notify = append(r.notify, fn)
		}
	}
}

// NewRecorder returns an empty Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		capacity: DefaultCapacity,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add records a message and returns the stored entry. Fields are attached to
// the diagnostic log only.
func (r *Recorder) Add(severity Severity, message string, fields ...zap.Field) Entry {
	r.mu.Lock()
	r.counter++
	ts := r.now()
	entry := Entry{
		ID:        fmt.Sprintf("log-%d-%d", ts.UnixMilli(), r.counter),
		Message:   message,
		Severity:  severity,
		Timestamp: ts,
	}
	next := make([]Entry, 0, min(len(r.entries)+1, r.capacity))
	next = append(next, entry)
	next = append(next, r.entries...)
	if len(next) > r.capacity {
		next = next[:r.capacity]
	}
	r.entries = next
	r.mu.Unlock()

	r.mirror(entry, fields)
	for _, fn := range r.notify {
		fn(entry)
	}
	return entry
}

// Info records an info entry.
func (r *Recorder) Info(message string, fields ...zap.Field) Entry {
	return r.Add(SeverityInfo, message, fields...)
}

// Success records a success entry.
func (r *Recorder) Success(message string, fields ...zap.Field) Entry {
	return r.Add(SeveritySuccess, message, fields...)
}

// Warn records a warning entry.
func (r *Recorder) Warn(message string, fields ...zap.Field) Entry {
	return r.Add(SeverityWarning, message, fields...)
}

// Error records an error entry.
func (r *Recorder) Error(message string, fields ...zap.Field) Entry {
	return r.Add(SeverityError, message, fields...)
}

// Entries returns a copy of the stored entries, newest first.
func (r *Recorder) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(r.entries))
	copy(dup, r.entries)
	return dup
}

// Len returns the number of stored entries.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Recorder) mirror(entry Entry, fields []zap.Field) {
	fields = append(fields, zap.String("activity_id", entry.ID))
	switch entry.Severity {
	case SeverityError:
		r.logger.Error(entry.Message, fields...)
	case SeverityWarning:
		r.logger.Warn(entry.Message, fields...)
	default:
		r.logger.Info(entry.Message, append(fields, zap.String("severity", string(entry.Severity)))...)
	}
}
