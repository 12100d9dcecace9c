// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(newTestHandler(t))
}

func newTestHandler(t testing.TB) slog.Handler {
	return slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Entry is one captured log record.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder collects log records for assertions.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingLogger returns a logger that writes to t.Log() and keeps
// every record in the returned Recorder.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	return slog.New(&recordingHandler{next: newTestHandler(t), rec: rec}), rec
}

// Entries returns a copy of the captured records.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first record with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Message == msg {
			return e, true
		}
	}
	return Entry{}, false
}

type recordingHandler struct {
	next  slog.Handler
	rec   *Recorder
	attrs []slog.Attr
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Message: r.Message, Attrs: map[string]any{}}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.rec.mu.Lock()
	h.rec.entries = append(h.rec.entries, e)
	h.rec.mu.Unlock()

	return h.next.Handle(ctx, r)
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{
		next:  h.next.WithAttrs(attrs),
		rec:   h.rec,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

// WithGroup is passed through; grouped attrs are recorded unqualified.
func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{next: h.next.WithGroup(name), rec: h.rec, attrs: h.attrs}
}
