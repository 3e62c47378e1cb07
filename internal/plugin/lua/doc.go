// Package lua runs Notebook's startup script.
//
// Scripts execute in a gopher-lua state with only the base, package,
// string, table and math libraries opened. dofile, loadfile, load and
// loadstring are removed, require only resolves allowed modules and print
// writes to the application log instead of the terminal. Every run is bound
// by a deadline installed with LState.SetContext.
//
// The editor module is both a global and requirable:
//
//	local editor = require("editor")
//	editor.set_undo_limit(200)
//	if editor.search("TODO", false) > 0 then
//	    local s, e = editor.current()
//	    print("first TODO at", s, e)
//	end
//	print(editor.status().characters)
package lua
