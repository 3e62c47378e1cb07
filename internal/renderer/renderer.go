package renderer

import (
	"sort"
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/notebook/internal/renderer/backend"
	"github.com/dshills/notebook/internal/renderer/core"
)

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Options configures the renderer.
type Options struct {
	TabWidth int
	Theme    Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TabWidth: DefaultTabWidth,
		Theme:    DefaultTheme(),
	}
}

// Renderer draws frames onto a backend.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	opts    Options
}

// New creates a renderer drawing onto b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Renderer{backend: b, opts: opts}
}

// SetTabWidth changes the tab stop distance. Non-positive values are
// ignored.
func (r *Renderer) SetTabWidth(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.TabWidth = n
}

// TabWidth returns the tab stop distance.
func (r *Renderer) TabWidth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.TabWidth
}

// TextRows returns the number of rows left for text when bar is shown.
func (r *Renderer) TextRows(bar *Bar) int {
	_, h := r.backend.Size()
	return max(h-bar.Rows()-1, 0)
}

// Render draws f and flushes it to the display.
func (r *Renderer) Render(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.backend.Clear()

	rows := max(height-f.Bar.Rows()-1, 0)
	cx, cy, cursorVisible := r.drawText(&f, rows, width)

	if f.Bar != nil {
		bx, by := r.drawBar(f.Bar, rows, width, height-1)
		cx, cy, cursorVisible = bx, by, by >= 0
	}

	r.drawStatus(f.Status, height-1, width)

	if cursorVisible {
		r.backend.ShowCursor(cx, cy)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// DisplayWidth returns the number of columns s occupies when it starts at
// column zero, with tabs expanded to the next multiple of tabWidth.
func DisplayWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col := 0
	for _, ch := range s {
		if ch == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col += core.RuneWidth(ch)
	}
	return col
}

// drawText draws the visible lines and returns the cursor's screen
// position.
func (r *Renderer) drawText(f *Frame, rows, width int) (cx, cy int, cursorVisible bool) {
	theme := r.opts.Theme
	tabWidth := r.opts.TabWidth

	offset := 0
	y := 0
	var matchIdx int
	for lineNo, line := range strings.Split(f.Text, "\n") {
		runes := []rune(line)
		if lineNo < f.ScrollLine {
			offset += len(runes) + 1
			continue
		}
		if y >= rows {
			break
		}
		if y == 0 {
			matchIdx = sort.Search(len(f.Matches), func(i int) bool {
				return f.Matches[i].End > offset
			})
		}

		col := 0
		for i, ch := range runes {
			o := offset + i
			x := col - f.ScrollColumn
			if o == f.Cursor && x >= 0 && x < width {
				cx, cy, cursorVisible = x, y, true
			}

			for matchIdx < len(f.Matches) && f.Matches[matchIdx].End <= o {
				matchIdx++
			}
			style := theme.Text
			switch {
			case matchIdx < len(f.Matches) && f.Matches[matchIdx].Contains(o) && matchIdx == f.Current:
				style = theme.CurrentMatch
			case matchIdx < len(f.Matches) && f.Matches[matchIdx].Contains(o):
				style = theme.Match
			case f.Selection.Contains(o):
				style = theme.Selection
			}

			if ch == '\t' {
				w := tabWidth - col%tabWidth
				for k := 0; k < w; k++ {
					if x+k >= 0 && x+k < width {
						r.backend.SetCell(x+k, y, core.Cell{Rune: ' ', Width: 1, Style: style})
					}
				}
				col += w
				continue
			}

			w := core.RuneWidth(ch)
			if w == 0 {
				continue
			}
			if x >= 0 && x+w <= width {
				r.backend.SetCell(x, y, core.Cell{Rune: ch, Width: w, Style: style})
				if w == 2 {
					r.backend.SetCell(x+1, y, core.Cell{})
				}
			}
			col += w
		}

		// Cursor after the last character of the line.
		if end := offset + len(runes); f.Cursor == end {
			if x := col - f.ScrollColumn; x >= 0 && x < width {
				cx, cy, cursorVisible = x, y, true
			}
		}

		offset += len(runes) + 1
		y++
	}
	return cx, cy, cursorVisible
}

// drawBar draws one row per field starting at top and returns the cursor
// position at the end of the focused field, or a negative row when the
// bar does not fit above limit.
func (r *Renderer) drawBar(bar *Bar, top, width, limit int) (cx, cy int) {
	theme := r.opts.Theme
	cy = -1

	for i, field := range bar.Fields {
		y := top + i
		if y >= limit {
			break
		}

		info := ""
		if i == 0 {
			box := "[ ]"
			if bar.CaseSensitive {
				box = "[x]"
			}
			info = box + " Match case"
			if bar.Info != "" {
				info += "  " + bar.Info
			}
		}
		infoWidth := core.StringWidth(info)

		x := r.drawString(0, y, field.Label+": ", theme.BarLabel, width)
		fieldEnd := width
		if infoWidth > 0 {
			fieldEnd = max(width-infoWidth-1, x)
		}
		r.backend.Fill(core.ScreenRect{Top: y, Bottom: y + 1, Left: x, Right: fieldEnd},
			core.Cell{Rune: ' ', Width: 1, Style: theme.BarField})
		end := r.drawString(x, y, field.Value, theme.BarField, fieldEnd)

		if i == bar.Focus {
			cx, cy = min(end, max(fieldEnd-1, 0)), y
		}
		if infoWidth > 0 && width-infoWidth > x {
			r.drawString(width-infoWidth, y, info, theme.BarInfo, width)
		}
	}
	return cx, cy
}

func (r *Renderer) drawStatus(status string, y, width int) {
	style := r.opts.Theme.Status
	r.backend.Fill(core.ScreenRect{Top: y, Bottom: y + 1, Left: 0, Right: width},
		core.Cell{Rune: ' ', Width: 1, Style: style})
	r.drawString(0, y, status, style, width)
}

// drawString draws s one grapheme cluster at a time from column x and
// stops before maxX. It returns the column after the last cluster drawn.
func (r *Renderer) drawString(x, y int, s string, style core.Style, maxX int) int {
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)

		ch := []rune(cluster)[0]
		if ch < ' ' || ch == 0x7F {
			ch, w = ' ', 1
		}
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r.backend.SetCell(x, y, core.Cell{Rune: ch, Width: w, Style: style})
		if w == 2 {
			r.backend.SetCell(x+1, y, core.Cell{})
		}
		x += w
	}
	return x
}
