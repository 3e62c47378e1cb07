package lua

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dshills/notebook/internal/engine"
	"github.com/dshills/notebook/internal/engine/buffer"
)

func newEditorState(t *testing.T, text string) (*State, *engine.Engine, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	state := NewState(WithOutput(&out))
	t.Cleanup(func() { state.Close() })

	eng := engine.New(buffer.NewBufferFromString(text))
	NewEditorModule(eng).Register(state)
	return state, eng, &out
}

func TestEditorTextEditing(t *testing.T) {
	state, eng, out := newEditorState(t, "hello")

	code := `
		local editor = require("editor")
		editor.insert(5, " world")
		editor.delete(0, 1)
		print(editor.text())
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if got := eng.Text(); got != "ello world" {
		t.Errorf("Text() = %q, want %q", got, "ello world")
	}
	if got := out.String(); got != "ello world\n" {
		t.Errorf("output = %q", got)
	}
}

func TestEditorSetTextUndoRedo(t *testing.T) {
	state, eng, _ := newEditorState(t, "one")

	code := `
		editor.set_text("two")
		assert(editor.undo() == true)
		assert(editor.text() == "one")
		assert(editor.undo() == false)
		assert(editor.redo() == true)
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := eng.Text(); got != "two" {
		t.Errorf("Text() = %q, want two", got)
	}
}

func TestEditorInsertOutOfRange(t *testing.T) {
	state, eng, _ := newEditorState(t, "abc")

	err := state.DoString(context.Background(), `editor.insert(10, "x")`)
	if err == nil || !strings.Contains(err.Error(), "insert") {
		t.Errorf("DoString() error = %v, want insert error", err)
	}
	if got := eng.Text(); got != "abc" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
}

func TestEditorSetUndoLimit(t *testing.T) {
	state, eng, _ := newEditorState(t, "")

	if err := state.DoString(context.Background(), `editor.set_undo_limit(5)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := eng.UndoLimit(); got != 5 {
		t.Errorf("UndoLimit() = %d, want 5", got)
	}

	if err := state.DoString(context.Background(), `editor.set_undo_limit(0)`); err == nil {
		t.Error("set_undo_limit(0) should raise an error")
	}
	if got := eng.UndoLimit(); got != 5 {
		t.Errorf("UndoLimit() after rejection = %d, want 5", got)
	}
}

func TestEditorSearchAndReplace(t *testing.T) {
	state, eng, _ := newEditorState(t, "alpha beta Alpha")

	code := `
		assert(editor.search("alpha") == 1, "case-sensitive by default")
		assert(editor.search("alpha", false) == 2)

		local s, e = editor.current()
		assert(s == 0 and e == 5)

		assert(editor.next())
		s, e = editor.current()
		assert(s == 11 and e == 16)

		assert(editor.prev())
		assert(editor.replace("A"))
		n = editor.replace_all("beta", "B")
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if got := eng.Text(); got != "A B Alpha" {
		t.Errorf("Text() = %q, want %q", got, "A B Alpha")
	}
	if n := state.GetGlobal("n"); n.String() != "1" {
		t.Errorf("replace_all count = %v, want 1", n)
	}
}

func TestEditorCurrentWithoutMatch(t *testing.T) {
	state, _, _ := newEditorState(t, "text")

	code := `
		assert(editor.search("zzz") == 0)
		assert(editor.current() == nil)
		assert(editor.next() == false)
		assert(editor.replace("x") == false)
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
}

func TestEditorZoomAndStatus(t *testing.T) {
	state, eng, _ := newEditorState(t, "ab\ncd")

	code := `
		assert(editor.zoom_in() == 13)
		assert(editor.zoom_out() == 12)
		local st = editor.status()
		assert(st.characters == 5, "characters")
		assert(st.lines == 2, "lines")
		assert(st.font_size == 12, "font_size")
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := eng.FontSize(); got != engine.DefaultFontSize {
		t.Errorf("FontSize() = %d, want %d", got, engine.DefaultFontSize)
	}
}
