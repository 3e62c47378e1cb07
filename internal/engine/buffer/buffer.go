package buffer

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Change describes one mutation of the buffer.
// Start and End address the replaced range in the text as it was before
// the change; Text is what was inserted there.
type Change struct {
	Start    int
	End      int
	Text     string
	Revision uint64
}

// Listener is notified after the buffer content changed.
type Listener func(Change)

// Buffer is a character-addressed text buffer with selection and scroll
// state. All methods are thread-safe.
type Buffer struct {
	mu        sync.RWMutex
	text      []rune
	revision  uint64
	selection Range
	scroll    ScrollPosition
	height    int
	tabWidth  int

	listenerMu sync.RWMutex
	listeners  []Listener
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the tab width used for display column calculations.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithViewHeight sets the number of visible lines used by ScrollIntoView.
func WithViewHeight(lines int) Option {
	return func(b *Buffer) {
		if lines > 0 {
			b.height = lines
		}
	}
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		tabWidth: 4,
		height:   24,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
// No change notification is sent for the initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = []rune(s)
	return b
}

// isCRLF reports whether text[i] is the '\r' of a "\r\n" pair.
func isCRLF(text []rune, i int) bool {
	return text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n'
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRangeLocked(start, end); err != nil {
		return "", err
	}
	return string(b.text[start:end]), nil
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines returns the buffer content split into lines without terminators.
// Both "\n" and "\r\n" end a line.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lines := strings.Split(string(b.text), "\n")
	for i, l := range lines[:len(lines)-1] {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Revision returns the current revision. It increases on every mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// TabWidth returns the tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth changes the tab width. Non-positive values are ignored.
func (b *Buffer) SetTabWidth(width int) {
	if width <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabWidth = width
}

// PointAt converts a character offset to a line/column point.
// Offsets past the end are clamped.
func (b *Buffer) PointAt(offset int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pointAtLocked(offset)
}

func (b *Buffer) pointAtLocked(offset int) Point {
	offset = clamp(offset, 0, len(b.text))
	var p Point
	for i, r := range b.text[:offset] {
		switch {
		case r == '\n':
			p.Line++
			p.Column = 0
		case isCRLF(b.text, i):
		default:
			p.Column++
		}
	}
	return p
}

// OffsetAt converts a line/column point to a character offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) OffsetAt(p Point) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := 0
	offset := 0
	for line < p.Line && offset < len(b.text) {
		if b.text[offset] == '\n' {
			line++
		}
		offset++
	}
	if line < p.Line {
		return len(b.text)
	}
	for col := 0; col < p.Column && offset < len(b.text) && b.text[offset] != '\n' && !isCRLF(b.text, offset); col++ {
		offset++
	}
	return offset
}

// Write Operations

// SetText replaces the entire content. The text is stored as given, line
// endings included. The selection collapses to the start of the buffer and
// the scroll position resets to the top, the same way a text view resets
// when its model is swapped out.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	old := len(b.text)
	b.text = []rune(s)
	b.selection = Range{}
	b.scroll = ScrollPosition{}
	b.revision++
	change := Change{Start: 0, End: old, Text: s, Revision: b.revision}
	b.mu.Unlock()

	b.notify(change)
}

// InsertAt inserts s at the given character offset.
func (b *Buffer) InsertAt(offset int, s string) error {
	return b.Replace(offset, offset, s)
}

// DeleteRange removes the characters in [start, end).
func (b *Buffer) DeleteRange(start, end int) error {
	return b.Replace(start, end, "")
}

// Replace replaces the characters in [start, end) with s as a single change.
// The selection is adjusted so that it keeps pointing at the same text;
// a selection touching the replaced range collapses to the end of s.
func (b *Buffer) Replace(start, end int, s string) error {
	if start == end && s == "" {
		return b.checkRange(start, end)
	}

	b.mu.Lock()
	if err := b.checkRangeLocked(start, end); err != nil {
		b.mu.Unlock()
		return err
	}

	ins := []rune(s)
	text := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	text = append(text, b.text[:start]...)
	text = append(text, ins...)
	text = append(text, b.text[end:]...)
	b.text = text

	delta := len(ins) - (end - start)
	b.selection = Range{
		Start: shiftOffset(b.selection.Start, start, end, delta, len(ins)),
		End:   shiftOffset(b.selection.End, start, end, delta, len(ins)),
	}
	b.revision++
	change := Change{Start: start, End: end, Text: s, Revision: b.revision}
	b.mu.Unlock()

	b.notify(change)
	return nil
}

// shiftOffset maps an offset across a replacement of [start, end) by n
// characters.
func shiftOffset(off, start, end, delta, n int) int {
	switch {
	case off < start:
		return off
	case off >= end && off > start:
		return off + delta
	default:
		return start + n
	}
}

func (b *Buffer) checkRange(start, end int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.checkRangeLocked(start, end)
}

func (b *Buffer) checkRangeLocked(start, end int) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > len(b.text) {
		return ErrOffsetOutOfRange
	}
	return nil
}

// Selection and View State

// Select sets the selection to [start, end), clamped to the buffer.
// The cursor sits at end.
func (b *Buffer) Select(start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = Range{
		Start: clamp(start, 0, len(b.text)),
		End:   clamp(end, 0, len(b.text)),
	}
}

// Selection returns the current selection, normalized so Start <= End.
func (b *Buffer) Selection() Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return NewRange(b.selection.Start, b.selection.End)
}

// Cursor returns the cursor offset (the moving end of the selection).
func (b *Buffer) Cursor() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection.End
}

// SetCursor collapses the selection to offset.
func (b *Buffer) SetCursor(offset int) {
	b.Select(offset, offset)
}

// Scroll returns the scroll position.
func (b *Buffer) Scroll() ScrollPosition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scroll
}

// SetScroll sets the scroll position. Negative values clamp to zero and the
// line clamps to the last line.
func (b *Buffer) SetScroll(pos ScrollPosition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	last := b.pointAtLocked(len(b.text)).Line
	b.scroll = ScrollPosition{
		Line:   clamp(pos.Line, 0, last),
		Column: max(pos.Column, 0),
	}
}

// SetViewHeight sets the number of visible lines.
func (b *Buffer) SetViewHeight(lines int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if lines > 0 {
		b.height = lines
	}
}

// ViewHeight returns the number of visible lines.
func (b *Buffer) ViewHeight() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.height
}

// ScrollIntoView adjusts the vertical scroll so that the line holding the
// start of the range is visible. When the line is off screen it is placed in
// the middle of the view.
func (b *Buffer) ScrollIntoView(start, _ int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line := b.pointAtLocked(start).Line
	if line >= b.scroll.Line && line < b.scroll.Line+b.height {
		return
	}
	b.scroll.Line = max(line-b.height/2, 0)
}

// Change Notification

// OnChange registers a listener called after every mutation.
func (b *Buffer) OnChange(l Listener) {
	if l == nil {
		return
	}
	b.listenerMu.Lock()
	defer b.listenerMu.Unlock()
	b.listeners = append(b.listeners, l)
}

// notify calls all listeners. Must be called without b.mu held.
func (b *Buffer) notify(c Change) {
	b.listenerMu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.listenerMu.RUnlock()

	for _, l := range listeners {
		l(c)
	}
}

// RuneCount returns the number of characters in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
