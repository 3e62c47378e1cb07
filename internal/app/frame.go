package app

import (
	"fmt"

	"github.com/dshills/notebook/internal/engine"
	"github.com/dshills/notebook/internal/engine/buffer"
	"github.com/dshills/notebook/internal/renderer"
)

// barField identifies an input of the replace bar.
type barField int

const (
	fieldFind barField = iota
	fieldReplace
)

// bar returns the open bar, or nil.
func (app *Application) bar() *renderer.Bar {
	var bar *renderer.Bar
	switch app.engine.ActiveBar() {
	case engine.BarFind:
		bar = &renderer.Bar{
			Fields: []renderer.Field{{Label: "Find", Value: app.engine.FindPattern()}},
		}
	case engine.BarReplace:
		bar = &renderer.Bar{
			Fields: []renderer.Field{
				{Label: "Find", Value: app.engine.FindPattern()},
				{Label: "Replace", Value: app.engine.Replacement()},
			},
			Focus: int(app.focus),
		}
	default:
		return nil
	}

	bar.CaseSensitive = app.engine.CaseSensitive()
	index, total := app.engine.MatchPosition()
	bar.Info = fmt.Sprintf("%d/%d  %s", index, total, app.engine.MatchLabel())
	return bar
}

// frame builds the renderer frame from the engine and buffer state. It also
// tells the buffer how many lines are visible so that match navigation
// scrolls correctly.
func (app *Application) frame() renderer.Frame {
	bar := app.bar()
	if app.renderer != nil {
		app.buf.SetViewHeight(app.renderer.TextRows(bar))
	}

	sel := app.buf.Selection()
	scroll := app.buf.Scroll()

	f := renderer.Frame{
		Text:         app.buf.Text(),
		ScrollLine:   scroll.Line,
		ScrollColumn: scroll.Column,
		Cursor:       app.buf.Cursor(),
		Selection:    renderer.Span{Start: sel.Start, End: sel.End},
		Current:      -1,
		Bar:          bar,
		Status:       app.status(),
	}

	for _, m := range app.engine.Matches() {
		f.Matches = append(f.Matches, renderer.Span{Start: m.Start, End: m.End})
	}
	if index, _ := app.engine.MatchPosition(); index > 0 {
		f.Current = index - 1
	}
	return f
}

// status returns the status line text.
func (app *Application) status() string {
	s := app.engine.StatusLine() + "  " + app.doc.Title()
	if app.message != "" {
		s += "  " + app.message
	}
	return s
}

// render draws the current state.
func (app *Application) render() {
	if app.renderer == nil {
		return
	}
	app.renderer.Render(app.frame())
}

// ensureCursorVisible scrolls the view so the cursor is on screen.
func (app *Application) ensureCursorVisible() {
	rows := max(app.buf.ViewHeight(), 1)
	if app.renderer != nil {
		rows = max(app.renderer.TextRows(app.bar()), 1)
	}

	cursor := app.buf.PointAt(app.buf.Cursor())
	scroll := app.buf.Scroll()

	switch {
	case cursor.Line < scroll.Line:
		scroll.Line = cursor.Line
	case cursor.Line >= scroll.Line+rows:
		scroll.Line = cursor.Line - rows + 1
	}

	if app.backend != nil {
		width, _ := app.backend.Size()
		if width > 0 {
			line := app.buf.Lines()[cursor.Line]
			col := renderer.DisplayWidth(prefix(line, cursor.Column), app.buf.TabWidth())
			switch {
			case col < scroll.Column:
				scroll.Column = col
			case col >= scroll.Column+width:
				scroll.Column = col - width + 1
			}
		}
	}

	app.buf.SetScroll(scroll)
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	return string([]rune(s)[:min(n, buffer.RuneCount(s))])
}
