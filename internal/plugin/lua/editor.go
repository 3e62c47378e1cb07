package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/notebook/internal/engine"
)

// EditorModuleName is the name scripts use to reach the editor, either as
// the global table or through require.
const EditorModuleName = "editor"

// Editor is the part of the editing engine exposed to scripts.
// *engine.Engine implements it.
type Editor interface {
	Text() string
	Load(text string)
	Insert(offset int, s string) error
	Delete(start, end int) error

	Undo() bool
	Redo() bool
	SetUndoLimit(n int) error

	CaseSensitive() bool
	SearchFor(pattern string, caseSensitive bool) int
	Next() bool
	Prev() bool
	Current() (engine.Span, bool)
	ReplaceCurrentWith(replacement string) bool
	ReplaceAllWith(pattern, replacement string, caseSensitive bool) int

	ZoomIn() int
	ZoomOut() int
	Status() engine.Status
}

// EditorModule implements the editor API module. Offsets are 0-based
// character positions and ranges are half-open, the same as the engine's.
type EditorModule struct {
	ed     Editor
	bridge *Bridge
}

// NewEditorModule creates the module for ed.
func NewEditorModule(ed Editor) *EditorModule {
	return &EditorModule{ed: ed}
}

// Register installs the module into s.
func (m *EditorModule) Register(s *State) {
	m.bridge = NewBridge(s.L)
	s.RegisterModule(EditorModuleName, map[string]lua.LGFunction{
		"text":           m.text,
		"set_text":       m.setText,
		"insert":         m.insert,
		"delete":         m.delete,
		"undo":           m.undo,
		"redo":           m.redo,
		"set_undo_limit": m.setUndoLimit,
		"search":         m.search,
		"next":           m.next,
		"prev":           m.prev,
		"current":        m.current,
		"replace":        m.replace,
		"replace_all":    m.replaceAll,
		"zoom_in":        m.zoomIn,
		"zoom_out":       m.zoomOut,
		"status":         m.status,
	})
}

// text() -> string
func (m *EditorModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.ed.Text()))
	return 1
}

// set_text(s)
// Replaces the document. The change is undoable.
func (m *EditorModule) setText(L *lua.LState) int {
	m.ed.Load(L.CheckString(1))
	return 0
}

// insert(offset, s)
func (m *EditorModule) insert(L *lua.LState) int {
	offset := L.CheckInt(1)
	text := L.CheckString(2)

	if err := m.ed.Insert(offset, text); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// delete(start, end)
func (m *EditorModule) delete(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)

	if err := m.ed.Delete(start, end); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// undo() -> bool
func (m *EditorModule) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.Undo()))
	return 1
}

// redo() -> bool
func (m *EditorModule) redo(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.Redo()))
	return 1
}

// set_undo_limit(n)
// Raises an error for non-positive n.
func (m *EditorModule) setUndoLimit(L *lua.LState) int {
	if err := m.ed.SetUndoLimit(L.CheckInt(1)); err != nil {
		L.RaiseError("set_undo_limit: %v", err)
	}
	return 0
}

// search(pattern [, case_sensitive]) -> count
// case_sensitive defaults to the active bar's setting.
func (m *EditorModule) search(L *lua.LState) int {
	pattern := L.CheckString(1)
	caseSensitive := L.OptBool(2, m.ed.CaseSensitive())

	L.Push(lua.LNumber(m.ed.SearchFor(pattern, caseSensitive)))
	return 1
}

// next() -> bool
func (m *EditorModule) next(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.Next()))
	return 1
}

// prev() -> bool
func (m *EditorModule) prev(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.Prev()))
	return 1
}

// current() -> start, end | nil
func (m *EditorModule) current(L *lua.LState) int {
	span, ok := m.ed.Current()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(span.Start))
	L.Push(lua.LNumber(span.End))
	return 2
}

// replace(replacement) -> bool
// Replaces the current match.
func (m *EditorModule) replace(L *lua.LState) int {
	L.Push(lua.LBool(m.ed.ReplaceCurrentWith(L.CheckString(1))))
	return 1
}

// replace_all(pattern, replacement [, case_sensitive]) -> count
func (m *EditorModule) replaceAll(L *lua.LState) int {
	pattern := L.CheckString(1)
	replacement := L.CheckString(2)
	caseSensitive := L.OptBool(3, m.ed.CaseSensitive())

	L.Push(lua.LNumber(m.ed.ReplaceAllWith(pattern, replacement, caseSensitive)))
	return 1
}

// zoom_in() -> size
func (m *EditorModule) zoomIn(L *lua.LState) int {
	L.Push(lua.LNumber(m.ed.ZoomIn()))
	return 1
}

// zoom_out() -> size
func (m *EditorModule) zoomOut(L *lua.LState) int {
	L.Push(lua.LNumber(m.ed.ZoomOut()))
	return 1
}

// status() -> {characters, lines, font_size}
func (m *EditorModule) status(L *lua.LState) int {
	st := m.ed.Status()
	L.Push(m.bridge.ToLuaValue(map[string]any{
		"characters": st.Characters,
		"lines":      st.Lines,
		"font_size":  st.FontSize,
	}))
	return 1
}
