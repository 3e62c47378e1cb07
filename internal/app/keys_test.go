package app

import (
	"os"
	"strings"
	"testing"

	"github.com/dshills/notebook/internal/engine"
	"github.com/dshills/notebook/internal/renderer/backend"
)

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func runeKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func modKey(k backend.Key, r rune, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Rune: r, Mod: mod}
}

func typeString(t *testing.T, app *Application, s string) {
	t.Helper()
	for _, r := range s {
		if err := app.handleKey(runeKey(r)); err != nil {
			t.Fatalf("handleKey(%q): %v", r, err)
		}
	}
}

func press(t *testing.T, app *Application, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if err := app.handleKey(ev); err != nil {
			t.Fatalf("handleKey(%+v): %v", ev, err)
		}
	}
}

func TestKeys_Quit(t *testing.T) {
	app, _ := newTestApp(t, testOptions(t, ""))
	if err := app.handleKey(key(backend.KeyCtrlQ)); err != ErrQuit {
		t.Errorf("Ctrl+Q = %v, expected ErrQuit", err)
	}
}

func TestKeys_TypingUndoRedo(t *testing.T) {
	app, b := newTestApp(t, testOptions(t, ""))

	typeString(t, app, "hi")
	if app.Engine().Text() != "hi" {
		t.Fatalf("Text() = %q", app.Engine().Text())
	}
	if app.Document().Title() != "Untitled *" {
		t.Errorf("Title() = %q", app.Document().Title())
	}

	press(t, app, key(backend.KeyCtrlZ))
	if app.Engine().Text() != "h" {
		t.Errorf("after undo Text() = %q, expected %q", app.Engine().Text(), "h")
	}
	press(t, app, key(backend.KeyCtrlY))
	if app.Engine().Text() != "hi" {
		t.Errorf("after redo Text() = %q, expected %q", app.Engine().Text(), "hi")
	}

	press(t, app, key(backend.KeyCtrlY))
	if b.Beeps() != 1 {
		t.Errorf("redo with nothing to redo should beep, beeps = %d", b.Beeps())
	}

	press(t, app, key(backend.KeyCtrlZ), key(backend.KeyCtrlZ), key(backend.KeyCtrlZ))
	if app.Engine().Text() != "" {
		t.Errorf("Text() = %q, expected the empty baseline", app.Engine().Text())
	}
	if b.Beeps() != 2 {
		t.Errorf("undo past the baseline should beep, beeps = %d", b.Beeps())
	}
}

func TestKeys_EditAndMove(t *testing.T) {
	app, _ := newTextApp(t, "abc\ndef")

	tests := []struct {
		name   string
		event  backend.Event
		text   string
		cursor int
	}{
		{"end", key(backend.KeyEnd), "abc\ndef", 3},
		{"down keeps column", key(backend.KeyDown), "abc\ndef", 7},
		{"backspace", key(backend.KeyBackspace), "abc\nde", 6},
		{"home", key(backend.KeyHome), "abc\nde", 4},
		{"delete", key(backend.KeyDelete), "abc\ne", 4},
		{"enter", key(backend.KeyEnter), "abc\n\ne", 5},
		{"tab", key(backend.KeyTab), "abc\n\n\te", 6},
		{"left", key(backend.KeyLeft), "abc\n\n\te", 5},
		{"up", key(backend.KeyUp), "abc\n\n\te", 4},
		{"up again", key(backend.KeyUp), "abc\n\n\te", 0},
		{"up at top stays", key(backend.KeyUp), "abc\n\n\te", 0},
		{"backspace at start", key(backend.KeyBackspace), "abc\n\n\te", 0},
		{"right", key(backend.KeyRight), "abc\n\n\te", 1},
		{"page down clamps to last line", key(backend.KeyPageDown), "abc\n\n\te", 6},
		{"end of last line", key(backend.KeyEnd), "abc\n\n\te", 7},
		{"delete at end", key(backend.KeyDelete), "abc\n\n\te", 7},
	}

	for _, tt := range tests {
		press(t, app, tt.event)
		if got := app.Engine().Text(); got != tt.text {
			t.Errorf("%s: Text() = %q, want %q", tt.name, got, tt.text)
		}
		if got := app.buf.Cursor(); got != tt.cursor {
			t.Errorf("%s: Cursor() = %d, want %d", tt.name, got, tt.cursor)
		}
	}
}

func TestKeys_TypingReplacesSelection(t *testing.T) {
	app, _ := newTextApp(t, "hello world")
	app.buf.Select(0, 5)

	typeString(t, app, "J")
	if app.Engine().Text() != "J world" {
		t.Errorf("Text() = %q", app.Engine().Text())
	}
	if app.buf.Cursor() != 1 {
		t.Errorf("Cursor() = %d, expected 1", app.buf.Cursor())
	}

	app.buf.Select(2, 7)
	press(t, app, key(backend.KeyLeft))
	if sel := app.buf.Selection(); !sel.IsEmpty() || sel.Start != 2 {
		t.Errorf("Left should collapse to the selection start, got %+v", sel)
	}
}

func TestKeys_FindBar(t *testing.T) {
	app, _ := newTextApp(t, "one two one")

	press(t, app, key(backend.KeyCtrlF))
	if app.Engine().ActiveBar() != engine.BarFind {
		t.Fatalf("ActiveBar() = %v", app.Engine().ActiveBar())
	}

	typeString(t, app, "one")
	if app.Engine().Text() != "one two one" {
		t.Fatalf("typing in the bar changed the text: %q", app.Engine().Text())
	}
	if app.Engine().MatchCount() != 2 {
		t.Fatalf("MatchCount() = %d, expected 2", app.Engine().MatchCount())
	}

	press(t, app, key(backend.KeyEnter))
	if i, n := app.Engine().MatchPosition(); i != 2 || n != 2 {
		t.Errorf("after Enter position = %d/%d, expected 2/2", i, n)
	}
	press(t, app, modKey(backend.KeyEnter, 0, backend.ModShift))
	if i, _ := app.Engine().MatchPosition(); i != 1 {
		t.Errorf("after Shift+Enter position = %d, expected 1", i)
	}
	if sel := app.buf.Selection(); sel.Start != 0 || sel.End != 3 {
		t.Errorf("current match not selected: %+v", sel)
	}

	press(t, app, key(backend.KeyBackspace))
	if app.Engine().FindPattern() != "on" {
		t.Errorf("FindPattern() = %q", app.Engine().FindPattern())
	}

	press(t, app, key(backend.KeyEscape))
	if app.Engine().ActiveBar() != engine.BarNone || app.Engine().MatchCount() != 0 {
		t.Errorf("Escape should close the bar and clear matches")
	}
}

func TestKeys_CaseToggle(t *testing.T) {
	app, _ := newTextApp(t, "Alpha alpha")

	press(t, app, key(backend.KeyCtrlF))
	typeString(t, app, "alpha")
	if app.Engine().MatchCount() != 1 {
		t.Fatalf("case-sensitive MatchCount() = %d, expected 1", app.Engine().MatchCount())
	}

	press(t, app, modKey(backend.KeyRune, 'c', backend.ModAlt))
	if app.Engine().CaseSensitive() {
		t.Error("Alt+C should turn case sensitivity off")
	}
	if app.Engine().MatchCount() != 2 {
		t.Errorf("case-insensitive MatchCount() = %d, expected 2", app.Engine().MatchCount())
	}
	if app.Engine().FindPattern() != "alpha" {
		t.Errorf("Alt+C must not type into the field, pattern = %q", app.Engine().FindPattern())
	}
}

func TestKeys_ReplaceAll(t *testing.T) {
	app, _ := newTextApp(t, "a b a")

	press(t, app, key(backend.KeyCtrlG))
	typeString(t, app, "a")
	press(t, app, key(backend.KeyTab))
	typeString(t, app, "X")
	if app.Engine().Replacement() != "X" || app.Engine().FindPattern() != "a" {
		t.Fatalf("fields = %q/%q", app.Engine().FindPattern(), app.Engine().Replacement())
	}

	press(t, app, key(backend.KeyCtrlA))
	if app.Engine().Text() != "X b X" {
		t.Errorf("Text() = %q", app.Engine().Text())
	}
	if app.Message() != "2 replacements" {
		t.Errorf("Message() = %q", app.Message())
	}
	if app.Engine().FindPattern() != "X" || app.Engine().Replacement() != "" {
		t.Errorf("fields after replace all = %q/%q, expected %q/%q",
			app.Engine().FindPattern(), app.Engine().Replacement(), "X", "")
	}
	if app.focus != fieldFind {
		t.Error("focus should return to the find field")
	}

	press(t, app, key(backend.KeyCtrlZ))
	if app.Engine().Text() != "a b a" {
		t.Errorf("one undo should revert the whole replace, Text() = %q", app.Engine().Text())
	}
}

func TestKeys_ReplaceCurrent(t *testing.T) {
	app, b := newTextApp(t, "a b a")

	press(t, app, key(backend.KeyCtrlG))
	typeString(t, app, "b")
	press(t, app, key(backend.KeyTab))
	typeString(t, app, "Y")
	press(t, app, key(backend.KeyCtrlR))

	if app.Engine().Text() != "a Y a" {
		t.Errorf("Text() = %q", app.Engine().Text())
	}

	press(t, app, key(backend.KeyCtrlR))
	if b.Beeps() != 1 {
		t.Errorf("replace without a match should beep, beeps = %d", b.Beeps())
	}
}

func TestKeys_ReplaceBindingsNeedReplaceBar(t *testing.T) {
	app, _ := newTextApp(t, "a a")

	press(t, app, key(backend.KeyCtrlF))
	typeString(t, app, "a")
	press(t, app, key(backend.KeyCtrlA), key(backend.KeyTab))

	if app.Engine().Text() != "a a" {
		t.Errorf("Ctrl+A in the find bar changed the text: %q", app.Engine().Text())
	}
	if app.focus != fieldFind {
		t.Error("Tab in the find bar should not move focus")
	}
}

func TestKeys_Zoom(t *testing.T) {
	app, _ := newTestApp(t, testOptions(t, ""))

	tests := []struct {
		r    rune
		size int
	}{
		{'=', 13},
		{'+', 14},
		{'-', 13},
		{'0', 12},
		{'-', 11},
	}
	for _, tt := range tests {
		press(t, app, modKey(backend.KeyRune, tt.r, backend.ModCtrl))
		if got := app.Engine().FontSize(); got != tt.size {
			t.Errorf("Ctrl+%c: FontSize() = %d, want %d", tt.r, got, tt.size)
		}
	}
	if app.Engine().Text() != "" {
		t.Errorf("zoom chords typed text: %q", app.Engine().Text())
	}
	if app.Engine().CanUndo() {
		t.Error("zoom must not be recorded in the undo history")
	}
}

func TestKeys_Save(t *testing.T) {
	app, _ := newTextApp(t, "x")

	typeString(t, app, "y")
	press(t, app, key(backend.KeyCtrlS))

	if app.Message() != "Saved notes.txt" {
		t.Errorf("Message() = %q", app.Message())
	}
	if app.Document().IsModified() {
		t.Error("document still modified after save")
	}
	data, err := os.ReadFile(app.Document().Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "yx" {
		t.Errorf("saved %q, expected %q", data, "yx")
	}
}

func TestKeys_NewDocument(t *testing.T) {
	app, _ := newTextApp(t, "some text")

	press(t, app, key(backend.KeyCtrlF))
	typeString(t, app, "text")
	press(t, app, key(backend.KeyCtrlN))

	if app.Engine().Text() != "" {
		t.Errorf("Text() = %q", app.Engine().Text())
	}
	if app.Engine().MatchCount() != 0 {
		t.Error("new document should clear the search")
	}
	if app.Document().Path != "" || app.Document().Title() != "Untitled" {
		t.Errorf("document = %+v", app.Document())
	}

	press(t, app, key(backend.KeyCtrlS))
	if !strings.Contains(app.Message(), "No file name") {
		t.Errorf("Message() = %q", app.Message())
	}
}

func TestKeys_ScrollFollowsCursor(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("line")
	}
	b.WriteString(strings.Repeat("a", 60))
	app, _ := newTextApp(t, b.String())
	app.render()

	for i := 0; i < 20; i++ {
		press(t, app, key(backend.KeyDown))
	}
	// 10 rows minus the status line.
	if got := app.buf.Scroll().Line; got != 12 {
		t.Errorf("scroll line = %d, expected 12", got)
	}

	for i := 0; i < 20; i++ {
		press(t, app, key(backend.KeyUp))
	}
	if got := app.buf.Scroll().Line; got != 0 {
		t.Errorf("scroll line = %d, expected 0", got)
	}

	press(t, app, key(backend.KeyPageDown), key(backend.KeyPageDown), key(backend.KeyPageDown), key(backend.KeyPageDown))
	press(t, app, key(backend.KeyEnd))
	if got := app.buf.PointAt(app.buf.Cursor()); got.Line != 29 || got.Column != 64 {
		t.Fatalf("cursor = %+v, expected end of the last line", got)
	}
	// Column 64 must fit in 40 cells.
	if got := app.buf.Scroll().Column; got != 25 {
		t.Errorf("scroll column = %d, expected 25", got)
	}

	press(t, app, key(backend.KeyHome))
	if got := app.buf.Scroll().Column; got != 0 {
		t.Errorf("scroll column after Home = %d, expected 0", got)
	}
}

func TestKeys_SaveKeepsLineEndings(t *testing.T) {
	text := "one\r\ntwo\rthree\r\n"
	app, _ := newTextApp(t, text)

	press(t, app, key(backend.KeyCtrlS))

	data, err := os.ReadFile(app.Document().Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != text {
		t.Errorf("saved %q, want the original bytes %q", data, text)
	}
}

func TestKeys_CRLFEditing(t *testing.T) {
	app, _ := newTextApp(t, "ab\r\ncd")

	tests := []struct {
		name   string
		event  backend.Event
		text   string
		cursor int
	}{
		{"end stops before CR", key(backend.KeyEnd), "ab\r\ncd", 2},
		{"right crosses the break", key(backend.KeyRight), "ab\r\ncd", 4},
		{"left crosses the break", key(backend.KeyLeft), "ab\r\ncd", 2},
		{"delete removes the pair", key(backend.KeyDelete), "abcd", 2},
		{"enter", key(backend.KeyEnter), "ab\ncd", 3},
	}
	for _, tt := range tests {
		press(t, app, tt.event)
		if got := app.Engine().Text(); got != tt.text {
			t.Errorf("%s: Text() = %q, want %q", tt.name, got, tt.text)
		}
		if got := app.buf.Cursor(); got != tt.cursor {
			t.Errorf("%s: Cursor() = %d, want %d", tt.name, got, tt.cursor)
		}
	}

	app.Engine().Load("x\r\ny")
	app.buf.SetCursor(3)
	press(t, app, key(backend.KeyBackspace))
	if got := app.Engine().Text(); got != "xy" {
		t.Errorf("backspace after CRLF: Text() = %q, want %q", got, "xy")
	}
}
