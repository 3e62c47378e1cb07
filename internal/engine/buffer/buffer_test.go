package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromString(t *testing.T) {
	text := "héllo, wörld"
	b := NewBufferFromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}

	if b.Len() != 12 {
		t.Errorf("expected length 12 characters, got %d", b.Len())
	}
}

func TestBufferKeepsLineEndings(t *testing.T) {
	text := "one\r\ntwo\rthree\r\n"
	b := NewBufferFromString(text)
	if got := b.Text(); got != text {
		t.Errorf("got %q, want %q", got, text)
	}

	b.SetText("x\r\ny")
	if got := b.Text(); got != "x\r\ny" {
		t.Errorf("after SetText got %q, want %q", got, "x\r\ny")
	}

	if err := b.Replace(1, 1, "\r\n"); err != nil {
		t.Fatal(err)
	}
	if got := b.Text(); got != "x\r\n\r\ny" {
		t.Errorf("after Replace got %q", got)
	}
}

func TestBufferCRLFPositions(t *testing.T) {
	b := NewBufferFromString("ab\r\ncd\r\n")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	lines := b.Lines()
	want := []string{"ab", "cd", ""}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	tests := []struct {
		offset int
		point  Point
	}{
		{2, Point{Line: 0, Column: 2}},
		{3, Point{Line: 0, Column: 2}},
		{4, Point{Line: 1, Column: 0}},
		{6, Point{Line: 1, Column: 2}},
		{8, Point{Line: 2, Column: 0}},
	}
	for _, tt := range tests {
		if got := b.PointAt(tt.offset); got != tt.point {
			t.Errorf("PointAt(%d) = %v, want %v", tt.offset, got, tt.point)
		}
	}

	// Line ends stop before the CR.
	if got := b.OffsetAt(Point{Line: 0, Column: 99}); got != 2 {
		t.Errorf("OffsetAt(end of line 0) = %d, want 2", got)
	}
	if got := b.OffsetAt(Point{Line: 1, Column: 1}); got != 5 {
		t.Errorf("OffsetAt(1:1) = %d, want 5", got)
	}
}

func TestBufferLoneCR(t *testing.T) {
	b := NewBufferFromString("a\rb")
	if b.LineCount() != 1 {
		t.Errorf("a lone CR is not a line break, got %d lines", b.LineCount())
	}
	if got := b.PointAt(3); got != (Point{Line: 0, Column: 3}) {
		t.Errorf("PointAt(3) = %v", got)
	}
}

func TestBufferInsertAt(t *testing.T) {
	b := NewBufferFromString("Hello World")

	if err := b.InsertAt(5, ","); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertAtUsesCharacterOffsets(t *testing.T) {
	b := NewBufferFromString("日本語")

	if err := b.InsertAt(1, "-"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if b.Text() != "日-本語" {
		t.Errorf("got %q, want %q", b.Text(), "日-本語")
	}
}

func TestBufferDeleteRange(t *testing.T) {
	b := NewBufferFromString("Hello, World")

	if err := b.DeleteRange(5, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if b.Text() != "HelloWorld" {
		t.Errorf("got %q", b.Text())
	}
}

func TestBufferRangeErrors(t *testing.T) {
	b := NewBufferFromString("abc")

	tests := []struct {
		name       string
		start, end int
		want       error
	}{
		{"reversed", 2, 1, ErrRangeInvalid},
		{"negative", -1, 1, ErrOffsetOutOfRange},
		{"past end", 1, 4, ErrOffsetOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.DeleteRange(tt.start, tt.end)
			if !errors.Is(err, tt.want) {
				t.Errorf("DeleteRange(%d, %d) = %v, want %v", tt.start, tt.end, err, tt.want)
			}
			if b.Text() != "abc" {
				t.Errorf("buffer modified on error: %q", b.Text())
			}
		})
	}

	if err := b.InsertAt(4, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("InsertAt past end = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestBufferChangeNotification(t *testing.T) {
	b := NewBufferFromString("abc")

	var changes []Change
	b.OnChange(func(c Change) {
		changes = append(changes, c)
	})

	_ = b.InsertAt(3, "d")
	_ = b.DeleteRange(0, 1)
	b.SetText("xyz")

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}

	if changes[0].Start != 3 || changes[0].End != 3 || changes[0].Text != "d" {
		t.Errorf("insert change = %+v", changes[0])
	}
	if changes[1].Start != 0 || changes[1].End != 1 || changes[1].Text != "" {
		t.Errorf("delete change = %+v", changes[1])
	}
	if changes[2].Start != 0 || changes[2].End != 3 || changes[2].Text != "xyz" {
		t.Errorf("set text change = %+v", changes[2])
	}

	for i := 1; i < len(changes); i++ {
		if changes[i].Revision <= changes[i-1].Revision {
			t.Errorf("revisions not increasing: %d then %d", changes[i-1].Revision, changes[i].Revision)
		}
	}
}

func TestBufferEmptyInsertDoesNotNotify(t *testing.T) {
	b := NewBufferFromString("abc")

	calls := 0
	b.OnChange(func(Change) { calls++ })

	if err := b.InsertAt(1, ""); err != nil {
		t.Fatalf("empty insert failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no notification, got %d", calls)
	}
}

func TestBufferListenerMayReadBuffer(t *testing.T) {
	b := NewBufferFromString("abc")

	var seen string
	b.OnChange(func(Change) {
		seen = b.Text()
	})

	_ = b.InsertAt(0, ">")
	if seen != ">abc" {
		t.Errorf("listener saw %q, want %q", seen, ">abc")
	}
}

func TestBufferSelectionFollowsEdits(t *testing.T) {
	b := NewBufferFromString("hello world")
	b.Select(6, 11) // "world"

	_ = b.InsertAt(0, ">> ")
	if sel := b.Selection(); sel.Start != 9 || sel.End != 14 {
		t.Errorf("selection after insert before = %v, want [9:14)", sel)
	}

	_ = b.Replace(9, 14, "go")
	if sel := b.Selection(); sel.Start != 11 || sel.End != 11 {
		t.Errorf("selection after replace = %v, want [11:11)", sel)
	}
}

func TestBufferTypingMovesCursor(t *testing.T) {
	b := NewBufferFromString("")
	for _, r := range "abc" {
		_ = b.InsertAt(b.Cursor(), string(r))
	}
	if b.Text() != "abc" {
		t.Errorf("got %q", b.Text())
	}
	if b.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", b.Cursor())
	}
}

func TestBufferSetTextResetsView(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("line\n", 100))
	b.Select(10, 20)
	b.SetScroll(ScrollPosition{Line: 50, Column: 2})

	b.SetText("short")

	if sel := b.Selection(); !sel.IsEmpty() || sel.Start != 0 {
		t.Errorf("selection = %v, want collapsed at 0", sel)
	}
	if s := b.Scroll(); s != (ScrollPosition{}) {
		t.Errorf("scroll = %+v, want zero", s)
	}
}

func TestBufferSetScrollClamps(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")

	b.SetScroll(ScrollPosition{Line: 10, Column: -3})
	if s := b.Scroll(); s.Line != 2 || s.Column != 0 {
		t.Errorf("scroll = %+v, want {2 0}", s)
	}
}

func TestBufferScrollIntoView(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("x\n", 200), WithViewHeight(10))

	off := b.OffsetAt(Point{Line: 100})
	b.ScrollIntoView(off, off+1)
	if s := b.Scroll(); s.Line != 95 {
		t.Errorf("scroll line = %d, want 95", s.Line)
	}

	// Already visible: no movement.
	off = b.OffsetAt(Point{Line: 97})
	b.ScrollIntoView(off, off)
	if s := b.Scroll(); s.Line != 95 {
		t.Errorf("scroll line = %d, want 95", s.Line)
	}
}

func TestBufferPointConversion(t *testing.T) {
	b := NewBufferFromString("ab\ncdé\n\nf")

	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{6, Point{1, 3}},
		{7, Point{2, 0}},
		{8, Point{3, 0}},
		{9, Point{3, 1}},
	}

	for _, tt := range tests {
		if got := b.PointAt(tt.offset); got != tt.point {
			t.Errorf("PointAt(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := b.OffsetAt(tt.point); got != tt.offset {
			t.Errorf("OffsetAt(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}

	if got := b.OffsetAt(Point{Line: 0, Column: 99}); got != 2 {
		t.Errorf("OffsetAt past line end = %d, want 2", got)
	}
	if got := b.OffsetAt(Point{Line: 99}); got != b.Len() {
		t.Errorf("OffsetAt past last line = %d, want %d", got, b.Len())
	}
}

func TestBufferTextRange(t *testing.T) {
	b := NewBufferFromString("héllo")
	got, err := b.TextRange(1, 3)
	if err != nil {
		t.Fatalf("TextRange failed: %v", err)
	}
	if got != "él" {
		t.Errorf("got %q, want %q", got, "él")
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("one\ntwo\n")
	lines := b.Lines()
	if len(lines) != 3 || lines[0] != "one" || lines[1] != "two" || lines[2] != "" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestBufferTabWidth(t *testing.T) {
	b := NewBuffer(WithTabWidth(8))
	if b.TabWidth() != 8 {
		t.Errorf("expected tab width 8, got %d", b.TabWidth())
	}

	b.SetTabWidth(0)
	if b.TabWidth() != 8 {
		t.Errorf("SetTabWidth(0) changed width to %d", b.TabWidth())
	}

	b.SetTabWidth(2)
	if b.TabWidth() != 2 {
		t.Errorf("expected tab width 2, got %d", b.TabWidth())
	}
}
