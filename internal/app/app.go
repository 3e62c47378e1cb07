// Package app provides the main application structure and coordination
// for the notebook. It wires configuration, the editing engine, the startup
// script and the terminal together and runs the event loop.
package app

import (
	"context"
	"sync/atomic"

	"github.com/dshills/notebook/internal/config"
	"github.com/dshills/notebook/internal/config/watcher"
	"github.com/dshills/notebook/internal/engine"
	"github.com/dshills/notebook/internal/engine/buffer"
	"github.com/dshills/notebook/internal/plugin/lua"
	"github.com/dshills/notebook/internal/renderer"
	"github.com/dshills/notebook/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// File is opened at startup and saved with Ctrl+S. Empty starts an
	// untitled document.
	File string

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger

	// ConfigOptions are passed to config.New after the file option.
	ConfigOptions []config.Option
}

// Application is the central coordinator for all notebook components.
//
// Everything except the config watcher runs on the goroutine that calls
// Run. The watcher hands its events to the loop through
// backend.Interrupt.
type Application struct {
	opts Options
	log  *Logger

	config  *config.Config
	watcher *watcher.Watcher

	buf    *buffer.Buffer
	engine *engine.Engine
	doc    *Document
	script *lua.State

	backend  backend.Backend
	renderer *renderer.Renderer

	// focus is the replace bar field receiving input.
	focus barField

	// message is shown on the status line until the next key press.
	message string

	running atomic.Bool
}

// New creates an Application, loading configuration, the document and the
// startup script. Configuration and file errors are fatal. A failing script
// is logged and reported on the status line.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		log:  opts.Logger,
	}
	if app.log == nil {
		app.log = NullLogger
	}

	if err := app.bootstrap(context.Background()); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Config
	cfgOpts := append([]config.Option(nil), app.opts.ConfigOptions...)
	if app.opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(app.opts.ConfigPath))
	}
	app.config = config.New(cfgOpts...)
	if err := app.config.Load(ctx); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	settings := app.config.Settings()
	app.log.WithComponent("config").Info("loaded layers %v", app.config.Layers())

	// 2. Document
	doc, err := newDocument(app.opts.File)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	text, err := doc.Read()
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	app.doc = doc

	// 3. Buffer and engine
	app.buf = buffer.NewBufferFromString(text, buffer.WithTabWidth(settings.View.TabWidth))
	app.engine = engine.New(app.buf,
		engine.WithUndoLimit(settings.Undo.MaxHistory),
		engine.WithFontSize(settings.View.FontSize),
		engine.WithCaseSensitive(settings.Search.CaseSensitive),
		engine.WithLogger(app.log.WithComponent("engine")),
	)
	app.buf.OnChange(func(buffer.Change) {
		app.doc.SetModified(true)
	})

	// 4. Startup script
	if path := settings.Script.Path; path != "" {
		if err := app.runScript(ctx, path); err != nil {
			app.log.WithComponent("script").Error("%v", err)
			app.message = err.Error()
		}
	}

	return nil
}

// Run initializes b, draws the first frame and processes events until the
// user quits or b shuts down.
func (app *Application) Run(b backend.Backend) error {
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.backend = b
	app.renderer = renderer.New(b, renderer.Options{
		TabWidth: app.buf.TabWidth(),
		Theme:    renderer.DefaultTheme(),
	})

	app.startWatcher()
	defer app.stopWatcher()

	return app.eventLoop()
}

// Close releases the script state. It is safe to call more than once.
func (app *Application) Close() error {
	if app.script != nil {
		return app.script.Close()
	}
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Engine returns the editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Message returns the transient status message.
func (app *Application) Message() string {
	return app.message
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.log
}
