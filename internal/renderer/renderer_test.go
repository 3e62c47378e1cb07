package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/notebook/internal/renderer/backend"
	"github.com/dshills/notebook/internal/renderer/core"
)

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return New(b, DefaultOptions()), b
}

func row(b *backend.NullBackend, y int) string {
	return strings.TrimRight(b.Row(y), " ")
}

func TestRenderTextAndStatus(t *testing.T) {
	r, b := newTestRenderer(t, 30, 4)

	r.Render(Frame{
		Text:    "hello\nworld",
		Current: -1,
		Status:  " Characters: 11  Lines: 2",
	})

	want := []string{"hello", "world", "", " Characters: 11  Lines: 2"}
	for y, w := range want {
		if got := row(b, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}

	theme := DefaultTheme()
	if got := b.GetCell(29, 3).Style; got != theme.Status {
		t.Errorf("status fill style = %+v, want %+v", got, theme.Status)
	}
	if x, y, visible := b.CursorPosition(); x != 0 || y != 0 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (0, 0, true)", x, y, visible)
	}
}

func TestRenderHighlights(t *testing.T) {
	r, b := newTestRenderer(t, 20, 3)
	theme := DefaultTheme()

	r.Render(Frame{
		Text:      "abcabc xy",
		Matches:   []Span{{0, 3}, {3, 6}},
		Current:   1,
		Selection: Span{7, 9},
	})

	tests := []struct {
		x    int
		want core.Style
	}{
		{0, theme.Match},
		{2, theme.Match},
		{3, theme.CurrentMatch},
		{5, theme.CurrentMatch},
		{6, theme.Text},
		{7, theme.Selection},
		{8, theme.Selection},
		{9, core.DefaultStyle()},
	}
	for _, tt := range tests {
		if got := b.GetCell(tt.x, 0).Style; got != tt.want {
			t.Errorf("cell %d style = %+v, want %+v", tt.x, got, tt.want)
		}
	}
}

func TestRenderHighlightsAfterScroll(t *testing.T) {
	r, b := newTestRenderer(t, 10, 3)
	theme := DefaultTheme()

	r.Render(Frame{
		Text:       "ab\nab\nab",
		ScrollLine: 1,
		Matches:    []Span{{0, 2}, {3, 5}, {6, 8}},
		Current:    2,
	})

	if got := b.GetCell(0, 0).Style; got != theme.Match {
		t.Errorf("row 0 style = %+v, want match", got)
	}
	if got := b.GetCell(0, 1).Style; got != theme.CurrentMatch {
		t.Errorf("row 1 style = %+v, want current match", got)
	}
}

func TestRenderLayout(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"tab", Frame{Text: "a\tb"}, "a   b"},
		{"tab at stop", Frame{Text: "abcd\te"}, "abcd    e"},
		{"wide", Frame{Text: "漢x"}, "漢x"},
		{"horizontal scroll", Frame{Text: "abcdef", ScrollColumn: 2}, "cdef"},
		{"vertical scroll", Frame{Text: "0\n1\n2\n3", ScrollLine: 2}, "2"},
		{"clipped", Frame{Text: strings.Repeat("x", 15)}, strings.Repeat("x", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newTestRenderer(t, 10, 3)
			tt.frame.Current = -1
			r.Render(tt.frame)
			if got := row(b, 0); got != tt.want {
				t.Errorf("row 0 = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderWideCharacterCells(t *testing.T) {
	r, b := newTestRenderer(t, 10, 2)
	r.Render(Frame{Text: "漢x", Current: -1})

	if c := b.GetCell(0, 0); c.Rune != '漢' || c.Width != 2 {
		t.Errorf("cell 0 = %+v", c)
	}
	if c := b.GetCell(1, 0); !c.IsContinuation() {
		t.Errorf("cell 1 = %+v, want continuation", c)
	}
	if c := b.GetCell(2, 0); c.Rune != 'x' {
		t.Errorf("cell 2 = %+v", c)
	}
}

func TestRenderCursor(t *testing.T) {
	tests := []struct {
		name        string
		frame       Frame
		wantX       int
		wantY       int
		wantVisible bool
	}{
		{"middle", Frame{Text: "abc\ndef", Cursor: 5}, 1, 1, true},
		{"end of line", Frame{Text: "abc\ndef", Cursor: 3}, 3, 0, true},
		{"end of text", Frame{Text: "abc\ndef", Cursor: 7}, 3, 1, true},
		{"after tab", Frame{Text: "\tx", Cursor: 1}, 4, 0, true},
		{"scrolled away", Frame{Text: "a\nb\nc", Cursor: 0, ScrollLine: 1}, 0, 0, false},
		{"below view", Frame{Text: "a\nb\nc\nd", Cursor: 6}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newTestRenderer(t, 10, 4)
			tt.frame.Current = -1
			r.Render(tt.frame)

			x, y, visible := b.CursorPosition()
			if visible != tt.wantVisible {
				t.Fatalf("visible = %v, want %v", visible, tt.wantVisible)
			}
			if visible && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("cursor = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRenderFindBar(t *testing.T) {
	r, b := newTestRenderer(t, 40, 4)

	r.Render(Frame{
		Text:    "text",
		Current: -1,
		Bar: &Bar{
			Fields:        []Field{{Label: "Find", Value: "ab"}},
			CaseSensitive: true,
			Info:          "1/2  2 matches",
		},
		Status: " status",
	})

	got := row(b, 2)
	if !strings.HasPrefix(got, "Find: ab") {
		t.Errorf("bar row = %q, want Find prefix", got)
	}
	if !strings.HasSuffix(got, "[x] Match case  1/2  2 matches") {
		t.Errorf("bar row = %q, want case toggle and info", got)
	}
	if got := row(b, 3); got != " status" {
		t.Errorf("status row = %q", got)
	}
	if x, y, visible := b.CursorPosition(); x != 8 || y != 2 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (8, 2, true)", x, y, visible)
	}
}

func TestRenderReplaceBarFocus(t *testing.T) {
	r, b := newTestRenderer(t, 40, 5)

	r.Render(Frame{
		Current: -1,
		Bar: &Bar{
			Fields: []Field{{Label: "Find", Value: "a"}, {Label: "Replace", Value: "bcd"}},
			Focus:  1,
		},
	})

	if got := row(b, 2); !strings.HasSuffix(got, "[ ] Match case") {
		t.Errorf("find row = %q", got)
	}
	if got := row(b, 3); got != "Replace: bcd" {
		t.Errorf("replace row = %q", got)
	}
	if x, y, _ := b.CursorPosition(); x != 12 || y != 3 {
		t.Errorf("cursor = (%d, %d), want (12, 3)", x, y)
	}
}

func TestTextRows(t *testing.T) {
	r, _ := newTestRenderer(t, 40, 10)

	if got := r.TextRows(nil); got != 9 {
		t.Errorf("TextRows(nil) = %d, want 9", got)
	}
	bar := &Bar{Fields: []Field{{Label: "Find"}, {Label: "Replace"}}}
	if got := r.TextRows(bar); got != 7 {
		t.Errorf("TextRows(replace) = %d, want 7", got)
	}
}

func TestSetTabWidth(t *testing.T) {
	r, b := newTestRenderer(t, 20, 2)

	r.SetTabWidth(0)
	if r.TabWidth() != DefaultTabWidth {
		t.Errorf("TabWidth() = %d, want %d", r.TabWidth(), DefaultTabWidth)
	}

	r.SetTabWidth(8)
	r.Render(Frame{Text: "\tx", Current: -1})
	if got := row(b, 0); got != "        x" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		s        string
		tabWidth int
		want     int
	}{
		{"", 4, 0},
		{"abc", 4, 3},
		{"\t", 4, 4},
		{"a\t", 4, 4},
		{"abcd\t", 4, 8},
		{"漢字", 4, 4},
		{"\t", 0, DefaultTabWidth},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.s, tt.tabWidth); got != tt.want {
			t.Errorf("DisplayWidth(%q, %d) = %d, want %d", tt.s, tt.tabWidth, got, tt.want)
		}
	}
}
