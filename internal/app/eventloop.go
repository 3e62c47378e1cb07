package app

import (
	"errors"
	"runtime/debug"

	"github.com/dshills/notebook/internal/renderer/backend"
)

// eventLoop draws, waits for an event, handles it and runs the deferred
// engine tasks the event queued. It returns when the user quits or the
// backend shuts down.
func (app *Application) eventLoop() error {
	app.render()

	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			return nil
		}

		err := app.safeHandle(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			app.log.Error("%v", err)
			var panicErr *RecoveredPanicError
			if errors.As(err, &panicErr) {
				app.message = "internal error; see log"
			} else {
				app.message = err.Error()
			}
		}

		app.render()

		// Deferred work such as scroll restoration after undo runs once
		// the frame showing the restored text has been laid out.
		if app.engine.Queue().RunPending() > 0 {
			app.render()
		}
	}
}

// safeHandle calls handleBackendEvent and turns a panic into an error.
func (app *Application) safeHandle(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()
	return app.handleBackendEvent(ev)
}

// handleBackendEvent routes a backend event.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.ensureCursorVisible()
		return nil
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	default:
		return nil
	}
}

// handleInterrupt processes a wakeup posted from another goroutine.
// Posting ErrQuit stops the loop.
func (app *Application) handleInterrupt(data any) error {
	switch v := data.(type) {
	case configChanged:
		app.reloadConfig(v.path)
	case error:
		if errors.Is(v, ErrQuit) {
			return ErrQuit
		}
	}
	return nil
}
