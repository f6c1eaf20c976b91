// Package logtest provides a Logger that keeps entries in memory for assertions.
package logtest

import (
	"context"
	"maps"
	"sync"

	"github.com/Komy007/kkshop-sub000/internal/logging"
)

// Entry is one recorded log call.
type Entry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// Arg returns the value following key in the entry's key/value args.
func (e Entry) Arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

type sink struct {
	mu      sync.Mutex
	entries []Entry
}

// Recorder is a concurrency-safe logging.Logger. Children created through
// WithFields share the parent's entry list.
type Recorder struct {
	sink   *sink
	fields map[string]any
}

var (
	_ logging.Logger       = (*Recorder)(nil)
	_ logging.FieldsLogger = (*Recorder)(nil)
	_ logging.Provider     = (*Recorder)(nil)
)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{sink: &sink{}}
}

func (r *Recorder) record(level, msg string, args []any) {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	r.sink.entries = append(r.sink.entries, Entry{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Fields:  maps.Clone(r.fields),
	})
}

func (r *Recorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *Recorder) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *Recorder) WithContext(context.Context) logging.Logger { return r }

func (r *Recorder) WithFields(fields map[string]any) logging.Logger {
	merged := maps.Clone(r.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &Recorder{sink: r.sink, fields: merged}
}

// GetLogger lets a Recorder stand in for a logging.Provider.
func (r *Recorder) GetLogger(string) logging.Logger { return r }

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	return append([]Entry(nil), r.sink.entries...)
}

// Find returns entries matching level and message.
func (r *Recorder) Find(level, msg string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level && e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}
