package testutil

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Record is one captured log record with its attributes flattened
// into a map, bound attributes included.
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that keeps every record in memory
// for later assertions. Handlers derived through WithAttrs share one
// store, so records logged through Logger.With land in the same place
// with their bound attributes attached.
type CaptureHandler struct {
	store *recordStore
	bound []slog.Attr
}

type recordStore struct {
	mu      sync.Mutex
	records []Record
}

// NewLogger returns a logger that captures records at every level and
// the handler to read them back from.
func NewLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{store: &recordStore{}}
	return slog.New(h), h
}

// Enabled reports true for every level.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle stores the record.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.bound))
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, Record{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs returns a handler carrying the extra bound attributes
// that appends to the same store.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]slog.Attr, 0, len(h.bound)+len(attrs))
	bound = append(bound, h.bound...)
	bound = append(bound, attrs...)
	return &CaptureHandler{store: h.store, bound: bound}
}

// WithGroup returns the handler unchanged; grouped attributes keep
// their plain keys.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []Record {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]Record, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// ByMessage returns the captured records with the given message.
func (h *CaptureHandler) ByMessage(message string) []Record {
	var out []Record
	for _, r := range h.Records() {
		if r.Message == message {
			out = append(out, r)
		}
	}
	return out
}
