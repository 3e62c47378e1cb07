package engine

import (
	"github.com/dshills/notebook/internal/engine/history"
	"github.com/dshills/notebook/internal/engine/schedule"
)

// Default configuration values.
const (
	DefaultUndoLimit     = history.DefaultCapacity
	DefaultFontSize      = 12
	DefaultCaseSensitive = true

	MinFontSize = 1
	MaxFontSize = 144
)

// Logger receives debug output from the engine.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithUndoLimit sets the maximum number of undo snapshots, baseline included.
// Non-positive values are ignored.
func WithUndoLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undoLimit = n
		}
	}
}

// WithFontSize sets the initial font size, which is also the size ZoomReset
// returns to. Values outside [MinFontSize, MaxFontSize] are ignored.
func WithFontSize(size int) Option {
	return func(e *Engine) {
		if size >= MinFontSize && size <= MaxFontSize {
			e.fontSize = size
			e.defaultFontSize = size
		}
	}
}

// WithCaseSensitive sets the initial case sensitivity of both bars.
func WithCaseSensitive(on bool) Option {
	return func(e *Engine) {
		e.find.caseSensitive = on
		e.replaceFind.caseSensitive = on
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithQueue sets the queue deferred tasks are posted to. The owner of the
// queue is responsible for running it after each layout pass.
func WithQueue(q *schedule.Queue) Option {
	return func(e *Engine) {
		if q != nil {
			e.queue = q
		}
	}
}
