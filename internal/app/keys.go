package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/dshills/notebook/internal/engine"
	"github.com/dshills/notebook/internal/engine/buffer"
	"github.com/dshills/notebook/internal/renderer/backend"
)

// handleKey dispatches a key event. It returns ErrQuit when the user asked
// to exit.
func (app *Application) handleKey(ev backend.Event) error {
	app.message = ""

	handled, err := app.handleGlobalKey(ev)
	if handled || err != nil {
		return err
	}

	if app.engine.ActiveBar() != engine.BarNone {
		app.handleBarKey(ev)
		return nil
	}
	app.handleEditKey(ev)
	return nil
}

// handleGlobalKey handles bindings that work in every mode.
func (app *Application) handleGlobalKey(ev backend.Event) (bool, error) {
	switch ev.Key {
	case backend.KeyCtrlQ:
		return true, ErrQuit
	case backend.KeyCtrlZ:
		if !app.engine.Undo() {
			app.backend.Beep()
		}
	case backend.KeyCtrlY:
		if !app.engine.Redo() {
			app.backend.Beep()
		}
	case backend.KeyCtrlF:
		app.focus = fieldFind
		app.engine.OpenFind()
	case backend.KeyCtrlG:
		app.focus = fieldFind
		app.engine.OpenReplace()
	case backend.KeyCtrlN:
		app.newDocument()
	case backend.KeyCtrlS:
		app.save()
	case backend.KeyEscape:
		app.engine.CloseBars()
	case backend.KeyRune:
		return app.handleModifiedRune(ev), nil
	default:
		return false, nil
	}
	return true, nil
}

// handleModifiedRune handles the zoom and case toggle chords.
func (app *Application) handleModifiedRune(ev backend.Event) bool {
	switch {
	case ev.Mod.Has(backend.ModCtrl):
		switch ev.Rune {
		case '=', '+':
			app.engine.ZoomIn()
		case '-':
			app.engine.ZoomOut()
		case '0':
			app.engine.ZoomReset()
		default:
			return false
		}
		return true
	case ev.Mod.Has(backend.ModAlt):
		if ev.Rune != 'c' && ev.Rune != 'C' {
			return false
		}
		app.engine.SetCaseSensitive(!app.engine.CaseSensitive())
		return true
	}
	return false
}

// handleBarKey edits the focused bar field and drives match navigation.
func (app *Application) handleBarKey(ev backend.Event) {
	replaceBar := app.engine.ActiveBar() == engine.BarReplace

	switch ev.Key {
	case backend.KeyEnter:
		if ev.Mod.Has(backend.ModShift) {
			app.engine.Prev()
		} else {
			app.engine.Next()
		}
	case backend.KeyTab:
		if replaceBar {
			app.focus = 1 - app.focus
		}
	case backend.KeyCtrlR:
		if replaceBar && !app.engine.ReplaceCurrent() {
			app.backend.Beep()
		}
	case backend.KeyCtrlA:
		if replaceBar {
			n := app.engine.ReplaceAll()
			app.message = pluralize(n, "replacement", "replacements")
			app.focus = fieldFind
		}
	case backend.KeyBackspace:
		app.editField(func(s string) string {
			r := []rune(s)
			if len(r) == 0 {
				return s
			}
			return string(r[:len(r)-1])
		})
	case backend.KeyRune:
		app.editField(func(s string) string { return s + string(ev.Rune) })
	}
}

// editField applies fn to the focused bar field.
func (app *Application) editField(fn func(string) string) {
	if app.engine.ActiveBar() == engine.BarReplace && app.focus == fieldReplace {
		app.engine.SetReplacement(fn(app.engine.Replacement()))
		return
	}
	app.engine.SetFindPattern(fn(app.engine.FindPattern()))
}

// handleEditKey edits the buffer and moves the cursor.
func (app *Application) handleEditKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyRune:
		app.typeText(string(ev.Rune))
	case backend.KeyEnter:
		app.typeText("\n")
	case backend.KeyTab:
		app.typeText("\t")
	case backend.KeyBackspace:
		app.deleteBackward()
	case backend.KeyDelete:
		app.deleteForward()
	case backend.KeyLeft, backend.KeyRight, backend.KeyUp, backend.KeyDown,
		backend.KeyHome, backend.KeyEnd, backend.KeyPageUp, backend.KeyPageDown:
		app.moveCursor(ev.Key)
	default:
		return
	}
	app.ensureCursorVisible()
}

// typeText replaces the selection with s.
func (app *Application) typeText(s string) {
	sel := app.buf.Selection()
	app.edit(sel.Start, sel.End, s)
}

func (app *Application) deleteBackward() {
	sel := app.buf.Selection()
	if sel.IsEmpty() {
		if sel.Start == 0 {
			return
		}
		sel.Start = app.prevOffset(sel.Start)
	}
	app.edit(sel.Start, sel.End, "")
}

func (app *Application) deleteForward() {
	sel := app.buf.Selection()
	if sel.IsEmpty() {
		if sel.End >= app.buf.Len() {
			return
		}
		sel.End = app.nextOffset(sel.End)
	}
	app.edit(sel.Start, sel.End, "")
}

// prevOffset returns the offset one character before offset. A "\r\n"
// line break counts as one character.
func (app *Application) prevOffset(offset int) int {
	if offset >= 2 {
		if s, err := app.buf.TextRange(offset-2, offset); err == nil && s == "\r\n" {
			return offset - 2
		}
	}
	return max(offset-1, 0)
}

// nextOffset returns the offset one character after offset.
func (app *Application) nextOffset(offset int) int {
	if s, err := app.buf.TextRange(offset, offset+2); err == nil && s == "\r\n" {
		return offset + 2
	}
	return min(offset+1, app.buf.Len())
}

// edit replaces [start, end) with s and leaves the cursor after s.
func (app *Application) edit(start, end int, s string) {
	if err := app.buf.Replace(start, end, s); err != nil {
		app.log.Warn("edit [%d,%d): %v", start, end, err)
		return
	}
	app.buf.SetCursor(start + buffer.RuneCount(s))
}

// moveCursor moves the cursor and collapses the selection.
func (app *Application) moveCursor(key backend.Key) {
	sel := app.buf.Selection()
	cursor := app.buf.Cursor()
	p := app.buf.PointAt(cursor)
	page := max(app.buf.ViewHeight()-1, 1)

	switch key {
	case backend.KeyLeft:
		if !sel.IsEmpty() {
			cursor = sel.Start
		} else {
			cursor = app.prevOffset(cursor)
		}
	case backend.KeyRight:
		if !sel.IsEmpty() {
			cursor = sel.End
		} else {
			cursor = app.nextOffset(cursor)
		}
	case backend.KeyUp:
		cursor = app.lineOffset(p.Line-1, p.Column, cursor)
	case backend.KeyDown:
		cursor = app.lineOffset(p.Line+1, p.Column, cursor)
	case backend.KeyPageUp:
		cursor = app.lineOffset(max(p.Line-page, 0), p.Column, cursor)
	case backend.KeyPageDown:
		cursor = app.lineOffset(min(p.Line+page, app.buf.LineCount()-1), p.Column, cursor)
	case backend.KeyHome:
		cursor = app.buf.OffsetAt(buffer.Point{Line: p.Line})
	case backend.KeyEnd:
		cursor = app.buf.OffsetAt(buffer.Point{Line: p.Line, Column: math.MaxInt})
	}
	app.buf.SetCursor(cursor)
}

// lineOffset returns the offset of column on line, or fallback when line
// does not exist.
func (app *Application) lineOffset(line, column, fallback int) int {
	if line < 0 || line >= app.buf.LineCount() {
		return fallback
	}
	return app.buf.OffsetAt(buffer.Point{Line: line, Column: column})
}

// newDocument replaces the document with an empty untitled one.
func (app *Application) newDocument() {
	app.engine.NewDocument()
	app.doc = &Document{Name: untitled}
	app.focus = fieldFind
}

// save writes the buffer to the document's file.
func (app *Application) save() {
	err := app.doc.Write(app.engine.Text())
	switch {
	case errors.Is(err, ErrNoPath):
		app.message = "No file name; start notebook with a path to save"
	case err != nil:
		app.log.Error("%v", err)
		app.message = err.Error()
	default:
		app.log.Info("saved %s", app.doc.Path)
		app.message = "Saved " + app.doc.Name
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
