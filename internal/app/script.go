package app

import (
	"context"

	"github.com/dshills/notebook/internal/plugin/lua"
)

// runScript executes the startup script with the editor module bound to
// the engine. The state stays open until Close.
func (app *Application) runScript(ctx context.Context, path string) error {
	log := app.log.WithComponent("script")

	if app.script != nil {
		_ = app.script.Close()
	}
	app.script = lua.NewState(lua.WithOutput(log.Writer(LogLevelInfo)))
	lua.NewEditorModule(app.engine).Register(app.script)

	if err := app.script.DoFile(ctx, path); err != nil {
		return NewOperationError("script", path, err)
	}
	log.Info("ran %s", path)
	return nil
}
