package app

import (
	"context"
	"time"

	"github.com/dshills/notebook/internal/config/watcher"
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 200 * time.Millisecond

// configChanged is posted to the event loop when a config file changed.
type configChanged struct {
	path string
}

// startWatcher watches the configuration files. Failures only disable
// live reload.
func (app *Application) startWatcher() {
	log := app.log.WithComponent("config")

	w := watcher.New(
		watcher.WithDebounce(reloadDebounce),
		watcher.WithErrorHandler(func(err error) {
			log.Warn("watcher: %v", err)
		}),
	)
	for _, path := range app.config.WatchPaths() {
		if err := w.Watch(path); err != nil {
			log.Warn("watch %s: %v", path, err)
		}
	}

	b := app.backend
	w.OnChange(func(ev watcher.Event) {
		b.Interrupt(configChanged{path: ev.Path})
	})

	if err := w.Start(); err != nil {
		log.Warn("live reload disabled: %v", err)
		return
	}
	app.watcher = w
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		app.watcher.Stop()
		app.watcher = nil
	}
}

// reloadConfig reloads the configuration and applies the settings that can
// change at runtime. An invalid configuration is logged and ignored.
func (app *Application) reloadConfig(path string) {
	log := app.log.WithComponent("config").WithField("file", path)

	prev := app.config.Settings()
	if err := app.config.Load(context.Background()); err != nil {
		log.Warn("reload ignored: %v", err)
		app.message = "Config reload failed; see log"
		return
	}

	s := app.config.Settings()
	if err := app.engine.SetUndoLimit(s.Undo.MaxHistory); err != nil {
		log.Warn("undo.max_history: %v", err)
	}
	// Keep the user's zoom unless the configured size itself changed.
	if s.View.FontSize != prev.View.FontSize {
		if err := app.engine.SetDefaultFontSize(s.View.FontSize); err != nil {
			log.Warn("view.font_size: %v", err)
		}
	}
	app.buf.SetTabWidth(s.View.TabWidth)
	if app.renderer != nil {
		app.renderer.SetTabWidth(s.View.TabWidth)
	}

	log.Info("reloaded (undo limit %d, font size %d)", s.Undo.MaxHistory, s.View.FontSize)
	app.message = "Config reloaded"
}
